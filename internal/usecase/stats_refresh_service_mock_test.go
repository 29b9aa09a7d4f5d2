package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/region"
)

type mockStatsProvider struct {
	mock.Mock
}

func (m *mockStatsProvider) FetchGameLines(ctx context.Context, proLeague string, sinceWeek int) ([]ExternalGameLine, error) {
	args := m.Called(ctx, proLeague, sinceWeek)
	lines, _ := args.Get(0).([]ExternalGameLine)
	return lines, args.Error(1)
}

func TestStatsRefreshService_RefreshAll_FetchesEveryLeague(t *testing.T) {
	t.Parallel()

	f := newFixtures()
	f.seedPlayer(t, "lck-mid", "LCK", player.RoleMid)

	provider := &mockStatsProvider{}
	provider.
		On("FetchGameLines", mock.Anything, region.LeagueLCK, 0).
		Return([]ExternalGameLine{
			{PlayerID: "lck-mid", Week: 1, Stats: player.GameStats{Kills: 5, Deaths: 2, Assists: 3, CreepScore: 100}},
		}, nil).
		Once()
	provider.
		On("FetchGameLines", mock.Anything, mock.AnythingOfType("string"), 0).
		Return([]ExternalGameLine(nil), nil)

	service := NewStatsRefreshService(provider, f.playerRepo, 2, f.logger)

	result, err := service.RefreshAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(region.AllLeagues()), result.Leagues)
	require.Equal(t, 1, result.LinesFetched)
	require.Equal(t, 1, result.PlayersUpdated)

	updated, ok, err := f.playerRepo.GetByID(context.Background(), "lck-mid")
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 19.5, updated.WeekPoints(1), 1e-9)

	provider.AssertExpectations(t)
}

func TestStatsRefreshService_RefreshAll_ProviderFailureSurfaces(t *testing.T) {
	t.Parallel()

	f := newFixtures()

	provider := &mockStatsProvider{}
	provider.
		On("FetchGameLines", mock.Anything, mock.AnythingOfType("string"), 0).
		Return([]ExternalGameLine(nil), errors.New("upstream down"))

	service := NewStatsRefreshService(provider, f.playerRepo, 2, f.logger)

	_, err := service.RefreshAll(context.Background())
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}
