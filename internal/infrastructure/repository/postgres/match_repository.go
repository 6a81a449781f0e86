package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fulbito-app/fulbito/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchSelectQuery = `
SELECT id, scheduled_at, format, status,
       team_a_name, team_a_player_ids, team_a_ovr, team_a_score,
       team_b_name, team_b_player_ids, team_b_ovr, team_b_score,
       evaluation, created_at, updated_at
FROM matches`

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, matchSelectQuery+` ORDER BY scheduled_at, id`); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, matchSelectQuery+` WHERE id = $1`, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	m, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return m, true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	payload, err := encodeEvaluation(m.Evaluation)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO matches (id, scheduled_at, format, status,
                     team_a_name, team_a_player_ids, team_a_ovr, team_a_score,
                     team_b_name, team_b_player_ids, team_b_ovr, team_b_score,
                     evaluation, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`

	if _, err := r.db.ExecContext(ctx, query,
		m.ID, m.ScheduledAt, string(m.Format), m.Status,
		m.TeamA.Name, pq.StringArray(m.TeamA.PlayerIDs), m.TeamA.OVR, nullInt(m.TeamA.Score),
		m.TeamB.Name, pq.StringArray(m.TeamB.PlayerIDs), m.TeamB.OVR, nullInt(m.TeamB.Score),
		payload,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	payload, err := encodeEvaluation(m.Evaluation)
	if err != nil {
		return err
	}

	const query = `
UPDATE matches
SET scheduled_at = $2, format = $3, status = $4,
    team_a_name = $5, team_a_player_ids = $6, team_a_ovr = $7, team_a_score = $8,
    team_b_name = $9, team_b_player_ids = $10, team_b_ovr = $11, team_b_score = $12,
    evaluation = $13, updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.ScheduledAt, string(m.Format), m.Status,
		m.TeamA.Name, pq.StringArray(m.TeamA.PlayerIDs), m.TeamA.OVR, nullInt(m.TeamA.Score),
		m.TeamB.Name, pq.StringArray(m.TeamB.PlayerIDs), m.TeamB.OVR, nullInt(m.TeamB.Score),
		payload,
	)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s not found", m.ID)
	}

	return nil
}
