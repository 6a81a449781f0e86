package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/platform/cache"
	"github.com/fulbito-app/fulbito/internal/platform/rng"
)

type mockPlayerRepository struct {
	mock.Mock
}

func (m *mockPlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]player.Player)
	return out, args.Error(1)
}

func (m *mockPlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(player.Player)
	return out, args.Bool(1), args.Error(2)
}

func (m *mockPlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	args := m.Called(ctx, playerIDs)
	out, _ := args.Get(0).([]player.Player)
	return out, args.Error(1)
}

func (m *mockPlayerRepository) Create(ctx context.Context, item player.Player) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockPlayerRepository) Update(ctx context.Context, item player.Player) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockPlayerRepository) AppendHistory(ctx context.Context, playerID string, entry player.HistoryEntry) error {
	return m.Called(ctx, playerID, entry).Error(0)
}

func newMockedRosterService(repo *mockPlayerRepository) *RosterService {
	calc := rating.NewCalculator(nil)
	distributor := rating.NewDistributor(nil, rng.FixedSource{Value: 0}, rating.DefaultTuning())
	return NewRosterService(repo, calc, distributor, &seqIDGenerator{}, cache.NewStore(time.Minute), nil)
}

func TestRosterService_ListPlayers_RepositoryError(t *testing.T) {
	t.Parallel()

	repo := new(mockPlayerRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection reset")).Once()

	service := newMockedRosterService(repo)

	_, err := service.ListPlayers(context.Background())
	if err == nil {
		t.Fatalf("expected repository error to propagate")
	}
	repo.AssertExpectations(t)
}

func TestRosterService_CreatePlayer_RepositoryError(t *testing.T) {
	t.Parallel()

	repo := new(mockPlayerRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p player.Player) bool {
		return p.Name == "Nuevo" && p.OVR > 0
	})).Return(errors.New("duplicate key")).Once()

	service := newMockedRosterService(repo)

	seven := 7
	_, err := service.CreatePlayer(context.Background(), CreatePlayerInput{
		Name:          "Nuevo",
		Position:      player.PositionCentralMidfielder,
		InitialRating: &seven,
	})
	if err == nil {
		t.Fatalf("expected repository error to propagate")
	}
	repo.AssertExpectations(t)
}

func TestRosterService_GetPlayer_NotFound(t *testing.T) {
	t.Parallel()

	repo := new(mockPlayerRepository)
	repo.On("GetByID", mock.Anything, "ghost").Return(player.Player{}, false, nil).Once()

	service := newMockedRosterService(repo)

	_, err := service.GetPlayer(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	repo.AssertExpectations(t)
}
