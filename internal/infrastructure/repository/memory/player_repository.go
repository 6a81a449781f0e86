package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fulbito-app/fulbito/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return &PlayerRepository{players: index}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, clonePlayer(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		out = append(out, clonePlayer(p))
	}

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[p.ID]; exists {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.players[p.ID] = clonePlayer(p)

	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[p.ID]; !exists {
		return fmt.Errorf("player %s not found", p.ID)
	}
	r.players[p.ID] = clonePlayer(p)

	return nil
}

func (r *PlayerRepository) AppendHistory(_ context.Context, playerID string, entry player.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.players[playerID]
	if !exists {
		return fmt.Errorf("player %s not found", playerID)
	}
	p.History = append(p.History, entry)
	r.players[playerID] = p

	return nil
}

// clonePlayer deep-copies the mutable parts so callers cannot alias the
// stored value.
func clonePlayer(p player.Player) player.Player {
	out := p
	if p.OriginalOVR != nil {
		v := *p.OriginalOVR
		out.OriginalOVR = &v
	}
	if p.History != nil {
		out.History = make([]player.HistoryEntry, len(p.History))
		copy(out.History, p.History)
	}
	return out
}
