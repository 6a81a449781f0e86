package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/domain/team"
	idgen "github.com/fulbito-app/fulbito/internal/platform/id"
	"github.com/fulbito-app/fulbito/internal/platform/logging"
)

// ReminderScheduler enqueues a delayed nudge to evaluate a match once its
// scheduled time has passed. Optional; match creation never fails on it.
type ReminderScheduler interface {
	ScheduleEvaluationReminder(ctx context.Context, matchID string, at time.Time) error
}

// BalanceService forms two skill-balanced sides out of the roster and turns
// accepted results into scheduled matches.
type BalanceService struct {
	playerRepo player.Repository
	matchRepo  match.Repository
	balancer   *team.Balancer
	calc       *rating.Calculator
	ids        idgen.Generator
	reminders  ReminderScheduler
	now        func() time.Time
	logger     *logging.Logger
}

func NewBalanceService(
	playerRepo player.Repository,
	matchRepo match.Repository,
	balancer *team.Balancer,
	calc *rating.Calculator,
	ids idgen.Generator,
	reminders ReminderScheduler,
	logger *logging.Logger,
) *BalanceService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BalanceService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		balancer:   balancer,
		calc:       calc,
		ids:        ids,
		reminders:  reminders,
		now:        time.Now,
		logger:     logger,
	}
}

type BalanceInput struct {
	// PlayerIDs selects the pool; empty means the whole roster.
	PlayerIDs []string
	Format    team.Format
}

// Balance resolves the pool, refreshes every member's cached OVR and runs the
// snake draft. The result is not persisted; see CreateMatch.
func (s *BalanceService) Balance(ctx context.Context, input BalanceInput) (team.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BalanceService.Balance")
	defer span.End()

	pool, err := s.resolvePool(ctx, input.PlayerIDs)
	if err != nil {
		return team.Result{}, err
	}

	result, err := s.balancer.Balance(pool, input.Format)
	if err != nil {
		return team.Result{}, err
	}

	return result, nil
}

type CreateMatchInput struct {
	PlayerIDs   []string
	Format      team.Format
	ScheduledAt time.Time
}

// CreateMatch balances the pool and persists the outcome as a scheduled
// match. The reminder enqueue is best effort.
func (s *BalanceService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, team.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BalanceService.CreateMatch")
	defer span.End()

	if input.ScheduledAt.IsZero() {
		return match.Match{}, team.Result{}, fmt.Errorf("%w: scheduled time is required", ErrInvalidInput)
	}

	result, err := s.Balance(ctx, BalanceInput{PlayerIDs: input.PlayerIDs, Format: input.Format})
	if err != nil {
		return match.Match{}, team.Result{}, err
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, team.Result{}, fmt.Errorf("generate match id: %w", err)
	}

	item := match.Match{
		ID:          matchID,
		ScheduledAt: input.ScheduledAt.UTC(),
		Format:      input.Format,
		TeamA:       sideFromTeam(result.TeamA),
		TeamB:       sideFromTeam(result.TeamB),
		Status:      match.StatusScheduled,
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, team.Result{}, fmt.Errorf("create match: %w", err)
	}

	if s.reminders != nil {
		if err := s.reminders.ScheduleEvaluationReminder(ctx, item.ID, item.ScheduledAt); err != nil {
			s.logger.WarnContext(ctx, "schedule evaluation reminder failed", "match_id", item.ID, "error", err)
		}
	}

	return item, result, nil
}

func (s *BalanceService) resolvePool(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	var pool []player.Player
	var err error

	if len(playerIDs) == 0 {
		pool, err = s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players for balancing: %w", err)
		}
	} else {
		pool, err = s.playerRepo.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, fmt.Errorf("get players for balancing: %w", err)
		}
		if len(pool) != len(playerIDs) {
			missing := missingIDs(playerIDs, pool)
			return nil, fmt.Errorf("%w: players %v", ErrNotFound, missing)
		}
	}

	// Refresh cached OVRs so the draft never balances on stale numbers.
	for idx := range pool {
		pool[idx].OVR = s.calc.Compute(pool[idx].Attributes, pool[idx].Position)
	}

	return pool, nil
}

func sideFromTeam(t team.Team) match.Side {
	return match.Side{
		Name:      t.Name,
		PlayerIDs: t.PlayerIDs(),
		OVR:       t.OVR,
	}
}

func missingIDs(requested []string, found []player.Player) []string {
	index := make(map[string]struct{}, len(found))
	for _, p := range found {
		index[p.ID] = struct{}{}
	}

	out := make([]string, 0)
	for _, id := range requested {
		if _, ok := index[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
