package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/iter"

	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/platform/cache"
	idgen "github.com/fulbito-app/fulbito/internal/platform/id"
	"github.com/fulbito-app/fulbito/internal/platform/logging"
	"github.com/fulbito-app/fulbito/internal/platform/resilience"
)

const (
	defaultRecomputeWorkers = 4
	leaderboardCacheKey     = "roster:leaderboard"
)

// RosterService manages the player pool: registration, detail reads, bulk
// OVR maintenance and the leaderboard read model.
type RosterService struct {
	playerRepo  player.Repository
	calc        *rating.Calculator
	distributor *rating.Distributor
	ids         idgen.Generator
	store       *cache.Store
	flight      resilience.SingleFlight
	workers     int
	logger      *logging.Logger
}

func NewRosterService(
	playerRepo player.Repository,
	calc *rating.Calculator,
	distributor *rating.Distributor,
	ids idgen.Generator,
	store *cache.Store,
	logger *logging.Logger,
) *RosterService {
	if store == nil {
		store = cache.NewStore(30 * time.Second)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RosterService{
		playerRepo:  playerRepo,
		calc:        calc,
		distributor: distributor,
		ids:         ids,
		store:       store,
		workers:     defaultRecomputeWorkers,
		logger:      logger,
	}
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *RosterService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetPlayer")
	defer span.End()

	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player %s: %w", playerID, err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return p, nil
}

type CreatePlayerInput struct {
	Name     string
	Position player.Position
	// InitialRating seeds the profile through the distributor's first-time
	// path. Attributes takes precedence when both are set.
	InitialRating *int
	Attributes    *player.AttributeProfile
}

func (s *RosterService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreatePlayer")
	defer span.End()

	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if _, ok := player.AllPositions[input.Position]; !ok {
		return player.Player{}, fmt.Errorf("%w: invalid position %q", ErrInvalidInput, input.Position)
	}

	var attrs player.AttributeProfile
	switch {
	case input.Attributes != nil:
		attrs = input.Attributes.Clamped()
	case input.InitialRating != nil:
		distributed, err := s.distributor.Distribute(*input.InitialRating, input.Position, nil)
		if err != nil {
			return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		attrs = distributed
	default:
		return player.Player{}, fmt.Errorf("%w: either attributes or an initial rating is required", ErrInvalidInput)
	}

	playerID, err := s.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{
		ID:         playerID,
		Name:       input.Name,
		Position:   input.Position,
		Attributes: attrs,
	}
	p.OVR = s.calc.Compute(p.Attributes, p.Position)

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.store.Delete(ctx, leaderboardCacheKey)

	return p, nil
}

type RecomputeResult struct {
	Total   int
	Updated int
	Failed  int
}

// RecomputeOVRs refreshes the cached OVR of every player whose stored value
// drifted from its attributes, e.g. after a weight table change. Players are
// independent, so the work fans out over a bounded ants pool; concurrent
// invocations collapse into one run.
func (s *RosterService) RecomputeOVRs(ctx context.Context) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RecomputeOVRs")
	defer span.End()

	value, err, _ := s.flight.Do("roster:recompute", func() (any, error) {
		return s.recomputeOnce(ctx)
	})
	if err != nil {
		return RecomputeResult{}, err
	}
	return value.(RecomputeResult), nil
}

func (s *RosterService) recomputeOnce(ctx context.Context) (RecomputeResult, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list players for recompute: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create recompute pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	result := RecomputeResult{Total: len(players)}

	for _, p := range players {
		p := p
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			ovr := s.calc.Compute(p.Attributes, p.Position)
			if ovr == p.OVR {
				return
			}

			p.OVR = ovr
			if err := s.playerRepo.Update(ctx, p); err != nil {
				s.logger.WarnContext(ctx, "recompute update failed", "player_id", p.ID, "error", err)
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}

			mu.Lock()
			result.Updated++
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.Failed++
			mu.Unlock()
		}
	}
	wg.Wait()

	if result.Updated > 0 {
		s.store.Delete(ctx, leaderboardCacheKey)
	}

	return result, nil
}

type LeaderboardRow struct {
	PlayerID string
	Name     string
	Position player.Position
	OVR      int
	// OVRDelta is the change since the player's last evaluation; zero when
	// no snapshot exists.
	OVRDelta      int
	MatchesPlayed int
}

// Leaderboard returns the roster sorted by OVR descending. Rows are built in
// parallel and the result is cached briefly; ties break on name to keep the
// ordering stable.
func (s *RosterService) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Leaderboard")
	defer span.End()

	value, err := s.store.GetOrCompute(ctx, leaderboardCacheKey, func() (any, error) {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players for leaderboard: %w", err)
		}

		rows := iter.Map(players, func(p *player.Player) LeaderboardRow {
			row := LeaderboardRow{
				PlayerID:      p.ID,
				Name:          p.Name,
				Position:      p.Position,
				OVR:           p.OVR,
				MatchesPlayed: len(p.History),
			}
			if p.OriginalOVR != nil {
				row.OVRDelta = p.OVR - *p.OriginalOVR
			}
			return row
		})

		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].OVR != rows[j].OVR {
				return rows[i].OVR > rows[j].OVR
			}
			return rows[i].Name < rows[j].Name
		})
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]LeaderboardRow), nil
}
