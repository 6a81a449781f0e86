package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/platform/logging"
)

// EvaluationService drives the match evaluation lifecycle: scheduled ->
// in_evaluation -> evaluated, turning per-player feedback into attribute
// updates. All external reads and writes are sequenced, never parallel, so
// back-to-back OVR recomputation stays consistent.
type EvaluationService struct {
	matchRepo   match.Repository
	playerRepo  player.Repository
	calc        *rating.Calculator
	distributor *rating.Distributor
	tagApplier  *rating.TagApplier
	now         func() time.Time
	logger      *logging.Logger
}

func NewEvaluationService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	calc *rating.Calculator,
	distributor *rating.Distributor,
	tagApplier *rating.TagApplier,
	logger *logging.Logger,
) *EvaluationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &EvaluationService{
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		calc:        calc,
		distributor: distributor,
		tagApplier:  tagApplier,
		now:         time.Now,
		logger:      logger,
	}
}

// BeginResult carries the transitioned match plus the hydrated player
// details an evaluation screen needs.
type BeginResult struct {
	Match   match.Match
	Players []player.Player
}

// Begin moves a scheduled match into evaluation. The transition is persisted
// before the result is returned so a second evaluator cannot re-initialize
// the same match.
func (s *EvaluationService) Begin(ctx context.Context, matchID string) (BeginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.Begin")
	defer span.End()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return BeginResult{}, err
	}

	if err := item.BeginEvaluation(); err != nil {
		return BeginResult{}, err
	}

	players := s.hydrateParticipants(ctx, item)

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return BeginResult{}, fmt.Errorf("persist begin evaluation: %w", err)
	}

	return BeginResult{Match: item, Players: players}, nil
}

type SubmitInput struct {
	MatchID     string
	TeamAScore  int
	TeamBScore  int
	EvaluatorID string
	Records     []match.EvaluationRecord
}

// Submit completes an evaluation: scores and records are stored on the
// match, every submitted record is converted into an attribute update, OVRs
// are recomputed and history entries appended, then the match is marked
// evaluated. Players without a record are left untouched. Each player's
// mutation is applied to a local copy first and only persisted afterwards,
// so a failed persist leaves the stored value at its pre-mutation state and
// the caller can retry.
func (s *EvaluationService) Submit(ctx context.Context, input SubmitInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.Submit")
	defer span.End()

	if input.TeamAScore < 0 || input.TeamBScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	item, err := s.loadMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}

	evaluation := match.Evaluation{
		SubmittedAt: s.now().UTC(),
		EvaluatorID: input.EvaluatorID,
		Records:     input.Records,
	}
	if err := item.AttachEvaluation(input.TeamAScore, input.TeamBScore, evaluation); err != nil {
		return match.Match{}, err
	}
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("persist evaluation payload: %w", err)
	}

	for _, playerID := range item.ParticipantIDs() {
		if err := s.applyRecordToPlayer(ctx, item, playerID); err != nil {
			return match.Match{}, err
		}
	}

	if err := item.MarkEvaluated(); err != nil {
		return match.Match{}, err
	}
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("persist evaluated status: %w", err)
	}

	return item, nil
}

func (s *EvaluationService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *EvaluationService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.GetMatch")
	defer span.End()

	return s.loadMatch(ctx, matchID)
}

// Cancel reverts in_evaluation back to scheduled. Nothing submitted so far
// is discarded because no player mutation has happened yet.
func (s *EvaluationService) Cancel(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.Cancel")
	defer span.End()

	item, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	if err := item.CancelEvaluation(); err != nil {
		return match.Match{}, err
	}
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("persist cancel evaluation: %w", err)
	}

	return item, nil
}

func (s *EvaluationService) loadMatch(ctx context.Context, matchID string) (match.Match, error) {
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match %s: %w", matchID, err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return item, nil
}

// hydrateParticipants fetches player detail for both sides. Missing players
// are skipped with a warning; partial data must not block the others.
func (s *EvaluationService) hydrateParticipants(ctx context.Context, item match.Match) []player.Player {
	ids := item.ParticipantIDs()
	out := make([]player.Player, 0, len(ids))
	for _, playerID := range ids {
		p, found, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			s.logger.WarnContext(ctx, "hydrate player failed", "match_id", item.ID, "player_id", playerID, "error", err)
			continue
		}
		if !found {
			s.logger.WarnContext(ctx, "participant not found, skipping", "match_id", item.ID, "player_id", playerID)
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *EvaluationService) applyRecordToPlayer(ctx context.Context, item match.Match, playerID string) error {
	record, hasRecord := item.Evaluation.RecordFor(playerID)
	if !hasRecord {
		// The engine processes only what was submitted; it never guesses
		// at missing feedback.
		return nil
	}

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player %s for evaluation: %w", playerID, err)
	}
	if !found {
		s.logger.WarnContext(ctx, "evaluated player not found, skipping", "match_id", item.ID, "player_id", playerID)
		return nil
	}

	updated, changed, err := s.applyRecord(p, record)
	if err != nil {
		return err
	}

	if changed {
		if err := s.playerRepo.Update(ctx, updated); err != nil {
			return fmt.Errorf("persist player %s: %w", playerID, err)
		}
	}

	entry := historyEntryFor(item, playerID, s.now().UTC())
	if err := s.playerRepo.AppendHistory(ctx, playerID, entry); err != nil {
		return fmt.Errorf("append history for player %s: %w", playerID, err)
	}

	return nil
}

func (s *EvaluationService) applyRecord(p player.Player, record match.EvaluationRecord) (player.Player, bool, error) {
	switch {
	case len(record.Tags) > 0:
		p.Attributes = s.tagApplier.Apply(p.Attributes, record.Tags)
	case record.GeneralRating != nil:
		attrs, err := s.distributor.Distribute(*record.GeneralRating, p.Position, &p.Attributes)
		if err != nil {
			return player.Player{}, false, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		p.Attributes = attrs
	default:
		return p, false, nil
	}

	previous := p.OVR
	p.OriginalOVR = &previous
	p.OVR = s.calc.Compute(p.Attributes, p.Position)

	return p, true, nil
}

func historyEntryFor(item match.Match, playerID string, playedAt time.Time) player.HistoryEntry {
	entry := player.HistoryEntry{MatchID: item.ID, PlayedAt: playedAt}

	teamAScore, teamBScore := 0, 0
	if item.TeamA.Score != nil {
		teamAScore = *item.TeamA.Score
	}
	if item.TeamB.Score != nil {
		teamBScore = *item.TeamB.Score
	}

	if onTeamA, _ := item.SideOf(playerID); onTeamA {
		entry.ScoredFor = teamAScore
		entry.ScoredAgainst = teamBScore
	} else {
		entry.ScoredFor = teamBScore
		entry.ScoredAgainst = teamAScore
	}
	return entry
}
