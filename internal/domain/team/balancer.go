package team

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
)

var (
	ErrInsufficientPlayers = errors.New("not enough players for format")
	ErrUnknownFormat       = errors.New("unknown match format")
)

// Format names the match size, e.g. "5v5" or "7v7".
type Format string

const (
	Format5v5   Format = "5v5"
	Format6v6   Format = "6v6"
	Format7v7   Format = "7v7"
	Format8v8   Format = "8v8"
	Format11v11 Format = "11v11"
)

var playersPerTeamByFormat = map[Format]int{
	Format5v5:   5,
	Format6v6:   6,
	Format7v7:   7,
	Format8v8:   8,
	Format11v11: 11,
}

func PlayersPerTeam(format Format) (int, error) {
	size, ok := playersPerTeamByFormat[format]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return size, nil
}

// Result is the outcome of one balancing request. Unassigned holds the
// remainder when the pool exceeds 2*playersPerTeam; nobody is dropped
// silently.
type Result struct {
	TeamA         Team
	TeamB         Team
	OVRDifference int
	Unassigned    []player.Player
}

// Balancer partitions a player pool into two sides minimizing the OVR gap.
// The draft is a heuristic, not an optimal partition: typical pools are
// 10-14 players, so O(n log n) determinism wins over exhaustive search.
type Balancer struct{}

func NewBalancer() *Balancer {
	return &Balancer{}
}

// Balance sorts the pool by OVR descending (stable, so ties keep input order
// and the draft stays deterministic) and walks it alternating sides: even
// pick to team A while it has capacity, odd pick to team B. The interleave
// keeps the high-OVR players from clustering on one side.
func (b *Balancer) Balance(players []player.Player, format Format) (Result, error) {
	perTeam, err := PlayersPerTeam(format)
	if err != nil {
		return Result{}, err
	}

	required := 2 * perTeam
	if len(players) < required {
		return Result{}, fmt.Errorf("%w: need %d, got %d", ErrInsufficientPlayers, required, len(players))
	}

	sorted := append([]player.Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OVR > sorted[j].OVR
	})

	teamA := Team{Name: "Team A", Players: make([]player.Player, 0, perTeam)}
	teamB := Team{Name: "Team B", Players: make([]player.Player, 0, perTeam)}
	unassigned := make([]player.Player, 0)

	for idx, p := range sorted {
		switch {
		case idx%2 == 0:
			if len(teamA.Players) < perTeam {
				teamA.Players = append(teamA.Players, p)
			} else if len(teamB.Players) < perTeam {
				teamB.Players = append(teamB.Players, p)
			} else {
				unassigned = append(unassigned, p)
			}
		default:
			if len(teamB.Players) < perTeam {
				teamB.Players = append(teamB.Players, p)
			} else if len(teamA.Players) < perTeam {
				teamA.Players = append(teamA.Players, p)
			} else {
				unassigned = append(unassigned, p)
			}
		}
	}

	teamA.OVR = rating.TeamOVR(memberOVRs(teamA.Players))
	teamB.OVR = rating.TeamOVR(memberOVRs(teamB.Players))

	diff := teamA.OVR - teamB.OVR
	if diff < 0 {
		diff = -diff
	}

	return Result{
		TeamA:         teamA,
		TeamB:         teamB,
		OVRDifference: diff,
		Unassigned:    unassigned,
	}, nil
}

func memberOVRs(players []player.Player) []int {
	out := make([]int, 0, len(players))
	for _, p := range players {
		out = append(out, p.OVR)
	}
	return out
}
