package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/domain/repository"
	"github.com/helixml/markerrange/domain/run"
	"github.com/helixml/markerrange/infrastructure/persistence"
	"github.com/helixml/markerrange/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRunStore(testdb.New(t))

	started, err := store.Save(ctx, run.NewRun(marker.NewRange("Intro", 1, 119), render.ModeViewportRender, "//render/1-Intro/shot_1-Intro_"))
	require.NoError(t, err)
	require.NotZero(t, started.ID())
	assert.Equal(t, run.StatusRunning, started.Status())
	assert.True(t, started.FinishedAt().IsZero())

	finished, err := store.Save(ctx, started.Succeed())
	require.NoError(t, err)
	assert.Equal(t, started.ID(), finished.ID())

	got, err := store.FindOne(ctx, repository.WithID(started.ID()))
	require.NoError(t, err)
	assert.Equal(t, "1-Intro", got.RangeID())
	assert.Equal(t, "Intro", got.Name())
	assert.Equal(t, 1, got.StartFrame())
	assert.Equal(t, 119, got.EndFrame())
	assert.Equal(t, render.ModeViewportRender, got.Mode())
	assert.Equal(t, "//render/1-Intro/shot_1-Intro_", got.OutputPath())
	assert.Equal(t, run.StatusSucceeded, got.Status())
	assert.False(t, got.FinishedAt().IsZero())

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRunStore_Filters(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRunStore(testdb.New(t))

	a := marker.NewRange("A", 1, 9)
	b := marker.NewRange("B", 10, 19)

	first, err := store.Save(ctx, run.NewRun(a, render.ModeFullRender, "out"))
	require.NoError(t, err)
	_, err = store.Save(ctx, first.Succeed())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	second, err := store.Save(ctx, run.NewRun(b, render.ModeFullRender, "out"))
	require.NoError(t, err)
	_, err = store.Save(ctx, second.Fail(errors.New("exit status 1")))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = store.Save(ctx, run.NewRun(a, render.ModeViewportSolid, "out"))
	require.NoError(t, err)

	byRange, err := store.Find(ctx, run.WithRangeID("1-A"), run.WithNewestFirst())
	require.NoError(t, err)
	require.Len(t, byRange, 2)
	assert.Equal(t, render.ModeViewportSolid, byRange[0].Mode())
	assert.Equal(t, render.ModeFullRender, byRange[1].Mode())

	failed, err := store.Find(ctx, run.WithStatus(run.StatusFailed))
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "10-B", failed[0].RangeID())
	assert.Equal(t, "exit status 1", failed[0].Error())

	limited, err := store.Find(ctx, run.WithNewestFirst(), repository.WithLimit(1))
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, run.StatusRunning, limited[0].Status())
}

func TestRunStore_FindOneNotFound(t *testing.T) {
	store := persistence.NewRunStore(testdb.New(t))

	_, err := store.FindOne(context.Background(), repository.WithID(42))

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRunMapper_RoundTrip(t *testing.T) {
	m := persistence.RunMapper{}
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	r := run.Reconstruct(5, "1-A", "A", 1, 9, render.ModeFullRender, "out", run.StatusRunning, "", started, time.Time{})
	model := m.ToModel(r)
	assert.Nil(t, model.FinishedAt)
	assert.Equal(t, r, m.ToDomain(model))

	done := run.Reconstruct(5, "1-A", "A", 1, 9, render.ModeFullRender, "out", run.StatusSucceeded, "", started, started.Add(time.Minute))
	model = m.ToModel(done)
	require.NotNil(t, model.FinishedAt)
	assert.Equal(t, done, m.ToDomain(model))
}
