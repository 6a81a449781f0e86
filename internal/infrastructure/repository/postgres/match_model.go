package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/domain/team"
)

type matchTableModel struct {
	ID             string         `db:"id"`
	ScheduledAt    time.Time      `db:"scheduled_at"`
	Format         string         `db:"format"`
	Status         string         `db:"status"`
	TeamAName      string         `db:"team_a_name"`
	TeamAPlayerIDs pq.StringArray `db:"team_a_player_ids"`
	TeamAOVR       int            `db:"team_a_ovr"`
	TeamAScore     sql.NullInt64  `db:"team_a_score"`
	TeamBName      string         `db:"team_b_name"`
	TeamBPlayerIDs pq.StringArray `db:"team_b_player_ids"`
	TeamBOVR       int            `db:"team_b_ovr"`
	TeamBScore     sql.NullInt64  `db:"team_b_score"`
	Evaluation     []byte         `db:"evaluation"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// evaluationDocument is the jsonb shape of a submitted evaluation. Kept apart
// from the domain type so the stored format can only change deliberately.
type evaluationDocument struct {
	SubmittedAt time.Time                  `json:"submitted_at"`
	EvaluatorID string                     `json:"evaluator_id,omitempty"`
	Records     []evaluationRecordDocument `json:"records"`
}

type evaluationRecordDocument struct {
	PlayerID      string   `json:"player_id"`
	GeneralRating *int     `json:"general_rating,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	EvaluatorID   string   `json:"evaluator_id,omitempty"`
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	out := match.Match{
		ID:          row.ID,
		ScheduledAt: row.ScheduledAt,
		Format:      team.Format(row.Format),
		Status:      row.Status,
		TeamA: match.Side{
			Name:      row.TeamAName,
			PlayerIDs: []string(row.TeamAPlayerIDs),
			OVR:       row.TeamAOVR,
			Score:     intPtr(row.TeamAScore),
		},
		TeamB: match.Side{
			Name:      row.TeamBName,
			PlayerIDs: []string(row.TeamBPlayerIDs),
			OVR:       row.TeamBOVR,
			Score:     intPtr(row.TeamBScore),
		},
	}

	if len(row.Evaluation) > 0 {
		var doc evaluationDocument
		if err := sonic.Unmarshal(row.Evaluation, &doc); err != nil {
			return match.Match{}, fmt.Errorf("decode evaluation for match %s: %w", row.ID, err)
		}
		evaluation := match.Evaluation{
			SubmittedAt: doc.SubmittedAt,
			EvaluatorID: doc.EvaluatorID,
			Records:     make([]match.EvaluationRecord, 0, len(doc.Records)),
		}
		for _, record := range doc.Records {
			evaluation.Records = append(evaluation.Records, match.EvaluationRecord{
				PlayerID:      record.PlayerID,
				GeneralRating: record.GeneralRating,
				Tags:          tagsFromStrings(record.Tags),
				Comment:       record.Comment,
				EvaluatorID:   record.EvaluatorID,
			})
		}
		out.Evaluation = &evaluation
	}

	return out, nil
}

func encodeEvaluation(evaluation *match.Evaluation) ([]byte, error) {
	if evaluation == nil {
		return nil, nil
	}

	doc := evaluationDocument{
		SubmittedAt: evaluation.SubmittedAt,
		EvaluatorID: evaluation.EvaluatorID,
		Records:     make([]evaluationRecordDocument, 0, len(evaluation.Records)),
	}
	for _, record := range evaluation.Records {
		doc.Records = append(doc.Records, evaluationRecordDocument{
			PlayerID:      record.PlayerID,
			GeneralRating: record.GeneralRating,
			Tags:          tagsToStrings(record.Tags),
			Comment:       record.Comment,
			EvaluatorID:   record.EvaluatorID,
		})
	}

	payload, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode evaluation: %w", err)
	}
	return payload, nil
}

func tagsFromStrings(items []string) []rating.Tag {
	if len(items) == 0 {
		return nil
	}
	out := make([]rating.Tag, 0, len(items))
	for _, item := range items {
		out = append(out, rating.Tag(item))
	}
	return out
}

func tagsToStrings(tags []rating.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, string(tag))
	}
	return out
}
