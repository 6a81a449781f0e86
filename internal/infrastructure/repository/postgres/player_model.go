package postgres

import (
	"database/sql"
	"time"

	"github.com/fulbito-app/fulbito/internal/domain/player"
)

type playerTableModel struct {
	ID          string        `db:"id"`
	Name        string        `db:"name"`
	Position    string        `db:"position"`
	Pace        int           `db:"pace"`
	Shooting    int           `db:"shooting"`
	Passing     int           `db:"passing"`
	Dribbling   int           `db:"dribbling"`
	Defending   int           `db:"defending"`
	Physical    int           `db:"physical"`
	OVR         int           `db:"ovr"`
	OriginalOVR sql.NullInt64 `db:"original_ovr"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type playerHistoryTableModel struct {
	ID            int64     `db:"id"`
	PlayerID      string    `db:"player_id"`
	MatchID       string    `db:"match_id"`
	PlayedAt      time.Time `db:"played_at"`
	ScoredFor     int       `db:"scored_for"`
	ScoredAgainst int       `db:"scored_against"`
}

func playerFromRow(row playerTableModel, history []playerHistoryTableModel) player.Player {
	out := player.Player{
		ID:       row.ID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		Attributes: player.AttributeProfile{
			Pace:      row.Pace,
			Shooting:  row.Shooting,
			Passing:   row.Passing,
			Dribbling: row.Dribbling,
			Defending: row.Defending,
			Physical:  row.Physical,
		},
		OVR:         row.OVR,
		OriginalOVR: intPtr(row.OriginalOVR),
	}
	if len(history) > 0 {
		out.History = make([]player.HistoryEntry, 0, len(history))
		for _, entry := range history {
			out.History = append(out.History, player.HistoryEntry{
				MatchID:       entry.MatchID,
				PlayedAt:      entry.PlayedAt,
				ScoredFor:     entry.ScoredFor,
				ScoredAgainst: entry.ScoredAgainst,
			})
		}
	}
	return out
}
