package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	AppendHistory(ctx context.Context, playerID string, entry HistoryEntry) error
}
