package team

import "github.com/fulbito-app/fulbito/internal/domain/player"

// Team is one side produced by a balancing request. It exists only for that
// request; the caller decides whether to persist it as part of a match.
type Team struct {
	Name    string
	Players []player.Player
	OVR     int
}

func (t Team) PlayerIDs() []string {
	out := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		out = append(out, p.ID)
	}
	return out
}
