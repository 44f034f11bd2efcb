package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyama86/YAIB/domain/entity"
	"github.com/pyama86/YAIB/domain/repository"
)

func TestMemoryRepositorySaveAndFind(t *testing.T) {
	repo := repository.NewMemoryRepository(time.Hour)
	ctx := context.Background()

	incident := &entity.Incident{
		ChannelID:      "CINC",
		CallingChannel: "CCALL",
		Title:          "Hello",
		Service:        "Apply",
		DeclaredUserID: "UDECL",
		StartedAt:      time.Now(),
	}
	require.NoError(t, repo.SaveIncident(ctx, incident))

	found, err := repo.FindIncidentByChannel(ctx, "CINC")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "CCALL", found.CallingChannel)
	assert.Equal(t, "Hello", found.Title)
}

func TestMemoryRepositoryFindMissing(t *testing.T) {
	repo := repository.NewMemoryRepository(time.Hour)

	found, err := repo.FindIncidentByChannel(context.Background(), "CUNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryRepositoryClose(t *testing.T) {
	repo := repository.NewMemoryRepository(time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SaveIncident(ctx, &entity.Incident{ChannelID: "CINC"}))
	require.NoError(t, repo.CloseIncident(ctx, "CINC"))

	found, err := repo.FindIncidentByChannel(ctx, "CINC")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.ClosedAt.IsZero())

	// 二重closeでClosedAtは動かない
	closedAt := found.ClosedAt
	require.NoError(t, repo.CloseIncident(ctx, "CINC"))
	found, err = repo.FindIncidentByChannel(ctx, "CINC")
	require.NoError(t, err)
	assert.Equal(t, closedAt, found.ClosedAt)
}

func TestMemoryRepositoryCloseMissingIsNoop(t *testing.T) {
	repo := repository.NewMemoryRepository(time.Hour)
	assert.NoError(t, repo.CloseIncident(context.Background(), "CUNKNOWN"))
}
