package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/infrastructure/repository/memory"
	"github.com/fulbito-app/fulbito/internal/platform/cache"
	"github.com/fulbito-app/fulbito/internal/platform/rng"
)

func newTestRosterService(players []player.Player) (*RosterService, *memory.PlayerRepository) {
	playerRepo := memory.NewPlayerRepository(players)
	svc := NewRosterService(
		playerRepo,
		rating.NewCalculator(nil),
		rating.NewDistributor(nil, rng.FixedSource{Value: 0}, rating.DefaultTuning()),
		&seqIDGenerator{},
		cache.NewStore(time.Minute),
		nil,
	)
	return svc, playerRepo
}

func TestRosterService_CreatePlayer(t *testing.T) {
	ctx := context.Background()
	intp := func(v int) *int { return &v }

	t.Run("from explicit attributes", func(t *testing.T) {
		svc, repo := newTestRosterService(nil)

		created, err := svc.CreatePlayer(ctx, CreatePlayerInput{
			Name:     "Beto Luna",
			Position: player.PositionForward,
			Attributes: &player.AttributeProfile{
				Pace: 70, Shooting: 80, Passing: 55, Dribbling: 65, Defending: 30, Physical: 72,
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == "" || created.OVR == 0 {
			t.Fatalf("player not initialized: %+v", created)
		}

		stored, found, _ := repo.GetByID(ctx, created.ID)
		if !found || stored.Name != "Beto Luna" {
			t.Fatalf("player not persisted: found=%v", found)
		}
	})

	t.Run("from a first-time general rating", func(t *testing.T) {
		svc, _ := newTestRosterService(nil)

		created, err := svc.CreatePlayer(ctx, CreatePlayerInput{
			Name:          "Nacho Paredes",
			Position:      player.PositionCentralMidfielder,
			InitialRating: intp(7),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Rating 7 distributes every attribute inside the 75-79 band.
		band, _ := rating.BandForRating(7)
		for _, attr := range player.Attributes {
			v := created.Attributes.Get(attr)
			if !band.Contains(v) {
				t.Fatalf("%s=%d outside band [%d,%d]", attr, v, band.Lower, band.Upper)
			}
		}
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _ := newTestRosterService(nil)

		cases := []struct {
			name  string
			input CreatePlayerInput
		}{
			{"missing name", CreatePlayerInput{Position: player.PositionForward, InitialRating: intp(6)}},
			{"invalid position", CreatePlayerInput{Name: "X", Position: "LB", InitialRating: intp(6)}},
			{"no attributes or rating", CreatePlayerInput{Name: "X", Position: player.PositionForward}},
			{"rating out of range", CreatePlayerInput{Name: "X", Position: player.PositionForward, InitialRating: intp(0)}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := svc.CreatePlayer(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})
}

func TestRosterService_GetPlayer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestRosterService([]player.Player{flatPlayer("p-1", player.PositionWinger, 77)})

	got, err := svc.GetPlayer(ctx, "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OVR != 77 {
		t.Fatalf("unexpected OVR: got=%d", got.OVR)
	}

	if _, err := svc.GetPlayer(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetPlayer(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_RecomputeOVRs(t *testing.T) {
	ctx := context.Background()

	stale := []player.Player{
		flatPlayer("p-1", player.PositionForward, 80),
		flatPlayer("p-2", player.PositionCenterBack, 75),
		flatPlayer("p-3", player.PositionGoalkeeper, 70),
	}
	stale[0].OVR = 50
	stale[1].OVR = 50

	svc, repo := newTestRosterService(stale)

	result, err := svc.RecomputeOVRs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 3 || result.Updated != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	for _, tc := range []struct {
		id   string
		want int
	}{{"p-1", 80}, {"p-2", 75}, {"p-3", 70}} {
		p, _, _ := repo.GetByID(ctx, tc.id)
		if p.OVR != tc.want {
			t.Fatalf("player %s OVR: got=%d want=%d", tc.id, p.OVR, tc.want)
		}
	}
}

func TestRosterService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	snapshot := func(p player.Player, original int) player.Player {
		p.OriginalOVR = &original
		p.History = []player.HistoryEntry{{MatchID: "m-1", PlayedAt: time.Now()}}
		return p
	}

	players := []player.Player{
		flatPlayer("p-1", player.PositionForward, 82),
		snapshot(flatPlayer("p-2", player.PositionCentralMidfielder, 85), 81),
		flatPlayer("p-3", player.PositionCenterBack, 82),
	}
	svc, repo := newTestRosterService(players)

	rows, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("unexpected row count: got=%d", len(rows))
	}
	if rows[0].PlayerID != "p-2" {
		t.Fatalf("unexpected leader: %s", rows[0].PlayerID)
	}
	if rows[0].OVRDelta != 4 || rows[0].MatchesPlayed != 1 {
		t.Fatalf("unexpected leader row: %+v", rows[0])
	}
	// OVR tie breaks on name so the order is stable across calls.
	if rows[1].PlayerID != "p-1" || rows[2].PlayerID != "p-3" {
		t.Fatalf("unexpected tie order: %s, %s", rows[1].PlayerID, rows[2].PlayerID)
	}

	// Cached: a direct repo write is invisible until the TTL or an
	// invalidating operation.
	if err := repo.Update(ctx, flatPlayer("p-1", player.PositionForward, 99)); err != nil {
		t.Fatalf("update: %v", err)
	}
	cached, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached[0].PlayerID != "p-2" {
		t.Fatalf("expected cached leaderboard, got leader %s", cached[0].PlayerID)
	}

	// CreatePlayer invalidates the cache.
	if _, err := svc.CreatePlayer(ctx, CreatePlayerInput{
		Name:     "Z Last",
		Position: player.PositionForward,
		Attributes: &player.AttributeProfile{
			Pace: 40, Shooting: 40, Passing: 40, Dribbling: 40, Defending: 40, Physical: 40,
		},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	fresh, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fresh) != 4 || fresh[0].PlayerID != "p-1" {
		t.Fatalf("expected refreshed leaderboard, got %d rows with leader %s", len(fresh), fresh[0].PlayerID)
	}
}
