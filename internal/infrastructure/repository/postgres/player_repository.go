package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fulbito-app/fulbito/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerSelectQuery = `
SELECT id, name, position, pace, shooting, passing, dribbling, defending, physical, ovr, original_ovr, created_at, updated_at
FROM players`

const playerHistorySelectQuery = `
SELECT id, player_id, match_id, played_at, scored_for, scored_against
FROM player_history`

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, playerSelectQuery+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	var history []playerHistoryTableModel
	if err := r.db.SelectContext(ctx, &history, playerHistorySelectQuery+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select player history: %w", err)
	}
	historyByPlayer := make(map[string][]playerHistoryTableModel)
	for _, entry := range history {
		historyByPlayer[entry.PlayerID] = append(historyByPlayer[entry.PlayerID], entry)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row, historyByPlayer[row.ID]))
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, playerSelectQuery+` WHERE id = $1`, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	var history []playerHistoryTableModel
	if err := r.db.SelectContext(ctx, &history, playerHistorySelectQuery+` WHERE player_id = $1 ORDER BY id`, playerID); err != nil {
		return player.Player{}, false, fmt.Errorf("select player history: %w", err)
	}

	return playerFromRow(row, history), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, playerSelectQuery+` WHERE id = ANY($1) ORDER BY id`, pq.Array(playerIDs)); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row, nil))
	}

	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	const query = `
INSERT INTO players (id, name, position, pace, shooting, passing, dribbling, defending, physical, ovr, original_ovr, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, string(p.Position),
		p.Attributes.Pace, p.Attributes.Shooting, p.Attributes.Passing,
		p.Attributes.Dribbling, p.Attributes.Defending, p.Attributes.Physical,
		p.OVR, nullInt(p.OriginalOVR),
	)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	const query = `
UPDATE players
SET name = $2, position = $3,
    pace = $4, shooting = $5, passing = $6, dribbling = $7, defending = $8, physical = $9,
    ovr = $10, original_ovr = $11, updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, string(p.Position),
		p.Attributes.Pace, p.Attributes.Shooting, p.Attributes.Passing,
		p.Attributes.Dribbling, p.Attributes.Defending, p.Attributes.Physical,
		p.OVR, nullInt(p.OriginalOVR),
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player %s not found", p.ID)
	}

	return nil
}

func (r *PlayerRepository) AppendHistory(ctx context.Context, playerID string, entry player.HistoryEntry) error {
	const query = `
INSERT INTO player_history (player_id, match_id, played_at, scored_for, scored_against)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		playerID, entry.MatchID, entry.PlayedAt, entry.ScoredFor, entry.ScoredAgainst,
	); err != nil {
		return fmt.Errorf("insert player history: %w", err)
	}

	return nil
}
