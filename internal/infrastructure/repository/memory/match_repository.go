package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fulbito-app/fulbito/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	index := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		index[m.ID] = m
	}
	return &MatchRepository{matches: index}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, cloneMatch(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.matches[m.ID] = cloneMatch(m)

	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[m.ID]; !exists {
		return fmt.Errorf("match %s not found", m.ID)
	}
	r.matches[m.ID] = cloneMatch(m)

	return nil
}

func cloneMatch(m match.Match) match.Match {
	out := m
	out.TeamA = cloneSide(m.TeamA)
	out.TeamB = cloneSide(m.TeamB)
	if m.Evaluation != nil {
		evaluation := *m.Evaluation
		evaluation.Records = make([]match.EvaluationRecord, len(m.Evaluation.Records))
		copy(evaluation.Records, m.Evaluation.Records)
		out.Evaluation = &evaluation
	}
	return out
}

func cloneSide(s match.Side) match.Side {
	out := s
	if s.PlayerIDs != nil {
		out.PlayerIDs = make([]string, len(s.PlayerIDs))
		copy(out.PlayerIDs, s.PlayerIDs)
	}
	if s.Score != nil {
		v := *s.Score
		out.Score = &v
	}
	return out
}
