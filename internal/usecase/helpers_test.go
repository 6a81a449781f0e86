package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/infrastructure/repository/memory"
	"github.com/fulbito-app/fulbito/internal/platform/rng"
)

// seqIDGenerator hands out id-1, id-2, ... so tests can predict identifiers.
type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

type reminderRecorder struct {
	matchIDs []string
	at       []time.Time
	err      error
}

func (r *reminderRecorder) ScheduleEvaluationReminder(_ context.Context, matchID string, at time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.matchIDs = append(r.matchIDs, matchID)
	r.at = append(r.at, at)
	return nil
}

// flatPlayer has every attribute equal, so its OVR equals the attribute value
// for any position.
func flatPlayer(id string, pos player.Position, value int) player.Player {
	return player.Player{
		ID:       id,
		Name:     "Player " + id,
		Position: pos,
		Attributes: player.AttributeProfile{
			Pace: value, Shooting: value, Passing: value,
			Dribbling: value, Defending: value, Physical: value,
		},
		OVR: value,
	}
}

func newTestEvaluationService(players []player.Player, matches []match.Match) (*EvaluationService, *memory.PlayerRepository, *memory.MatchRepository) {
	playerRepo := memory.NewPlayerRepository(players)
	matchRepo := memory.NewMatchRepository(matches)
	svc := NewEvaluationService(
		matchRepo,
		playerRepo,
		rating.NewCalculator(nil),
		rating.NewDistributor(nil, rng.FixedSource{Value: 0}, rating.DefaultTuning()),
		rating.NewTagApplier(nil),
		nil,
	)
	return svc, playerRepo, matchRepo
}
