package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/domain/team"
)

const (
	StatusScheduled    = "scheduled"
	StatusInEvaluation = "in_evaluation"
	StatusEvaluated    = "evaluated"
)

var (
	// ErrAlreadyEvaluated guards every transition out of scheduled and
	// in_evaluation. It is the sole concurrency control against two
	// evaluators double-processing a match; the persisted status field is
	// the source of truth, which assumes the store gives read-your-write
	// consistency.
	ErrAlreadyEvaluated = errors.New("match already evaluated")
	ErrNotInEvaluation  = errors.New("match is not being evaluated")
)

// Side is one team of a match plus its final score once known.
type Side struct {
	Name      string
	PlayerIDs []string
	OVR       int
	Score     *int
}

// EvaluationRecord is one player's post-match feedback: either a coarse 1-10
// rating or a set of performance tags. Immutable once the match is evaluated.
type EvaluationRecord struct {
	PlayerID      string
	GeneralRating *int
	Tags          []rating.Tag
	Comment       string
	EvaluatorID   string
}

// Evaluation holds the submitted per-player records for an evaluated match.
type Evaluation struct {
	SubmittedAt time.Time
	EvaluatorID string
	Records     []EvaluationRecord
}

func (e Evaluation) RecordFor(playerID string) (EvaluationRecord, bool) {
	for _, record := range e.Records {
		if record.PlayerID == playerID {
			return record, true
		}
	}
	return EvaluationRecord{}, false
}

// Match is one scheduled game between two balanced sides. Created when a
// balancing result is persisted; never deleted by this engine.
type Match struct {
	ID          string
	ScheduledAt time.Time
	Format      team.Format
	TeamA       Side
	TeamB       Side
	Status      string
	Evaluation  *Evaluation
}

// BeginEvaluation moves scheduled -> in_evaluation. A second begin on a match
// already in_evaluation is rejected: the first evaluator owns the session.
func (m *Match) BeginEvaluation() error {
	switch m.Status {
	case StatusScheduled:
		m.Status = StatusInEvaluation
		return nil
	case StatusInEvaluation, StatusEvaluated:
		return fmt.Errorf("%w: status=%s", ErrAlreadyEvaluated, m.Status)
	default:
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
}

// AttachEvaluation stores the final scores and the submitted records while
// the match is still in_evaluation. The payload is written before players are
// touched so a crash mid-processing never loses the submission.
func (m *Match) AttachEvaluation(teamAScore, teamBScore int, evaluation Evaluation) error {
	switch m.Status {
	case StatusInEvaluation:
		m.TeamA.Score = &teamAScore
		m.TeamB.Score = &teamBScore
		m.Evaluation = &evaluation
		return nil
	case StatusEvaluated:
		return fmt.Errorf("%w: double submit", ErrAlreadyEvaluated)
	default:
		return fmt.Errorf("%w: status=%s", ErrNotInEvaluation, m.Status)
	}
}

// MarkEvaluated is the terminal transition; it requires an attached
// evaluation.
func (m *Match) MarkEvaluated() error {
	switch m.Status {
	case StatusInEvaluation:
		if m.Evaluation == nil {
			return fmt.Errorf("evaluation payload is required before marking evaluated")
		}
		m.Status = StatusEvaluated
		return nil
	case StatusEvaluated:
		return fmt.Errorf("%w: double submit", ErrAlreadyEvaluated)
	default:
		return fmt.Errorf("%w: status=%s", ErrNotInEvaluation, m.Status)
	}
}

// CompleteEvaluation attaches scores plus records and marks the match
// evaluated in one step.
func (m *Match) CompleteEvaluation(teamAScore, teamBScore int, evaluation Evaluation) error {
	if err := m.AttachEvaluation(teamAScore, teamBScore, evaluation); err != nil {
		return err
	}
	return m.MarkEvaluated()
}

// CancelEvaluation reverts in_evaluation -> scheduled. No player mutation has
// happened at that point, so nothing else needs undoing.
func (m *Match) CancelEvaluation() error {
	switch m.Status {
	case StatusInEvaluation:
		m.Status = StatusScheduled
		return nil
	case StatusEvaluated:
		return fmt.Errorf("%w: cannot cancel", ErrAlreadyEvaluated)
	default:
		return fmt.Errorf("%w: status=%s", ErrNotInEvaluation, m.Status)
	}
}

// ParticipantIDs returns every player id on either side, team A first.
func (m Match) ParticipantIDs() []string {
	out := make([]string, 0, len(m.TeamA.PlayerIDs)+len(m.TeamB.PlayerIDs))
	out = append(out, m.TeamA.PlayerIDs...)
	out = append(out, m.TeamB.PlayerIDs...)
	return out
}

// SideOf reports which side a player is on; team A is true.
func (m Match) SideOf(playerID string) (onTeamA bool, found bool) {
	for _, id := range m.TeamA.PlayerIDs {
		if id == playerID {
			return true, true
		}
	}
	for _, id := range m.TeamB.PlayerIDs {
		if id == playerID {
			return false, true
		}
	}
	return false, false
}
