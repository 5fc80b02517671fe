package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/fluxterm/internal/clock"
	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/dao"
)

func TestService_SaveLoad(t *testing.T) {
	ctx := context.Background()
	srv := New()

	session := model.NewSession(10, "echo hi", "/tmp")
	require.NoError(t, srv.Save(ctx, session))

	// later changes do not leak into the journal until saved again
	session.Exit(0)
	loaded, err := srv.Load(ctx, session.Key)
	require.NoError(t, err)
	assert.Equal(t, model.StateRunning, loaded.State)
	assert.Equal(t, "echo hi", loaded.CommandLine)

	require.NoError(t, srv.Save(ctx, session))
	loaded, err = srv.Load(ctx, session.Key)
	require.NoError(t, err)
	assert.Equal(t, model.StateExited, loaded.State)
	assert.Equal(t, 0, loaded.ExitCode)
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	srv := New()
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &model.Session{ID: 1}), dao.ErrInvalidID)
	_, err := srv.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, "missing"), dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, ""), dao.ErrInvalidID)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	offset := 0
	clock.NowFunc = func() time.Time {
		offset++
		return base.Add(time.Duration(offset) * time.Second)
	}
	defer func() { clock.NowFunc = time.Now }()

	srv := New()
	running := model.NewSession(3, "sleep 1", "/")
	exited := model.NewSession(1, "true", "/")
	exited.Exit(0)
	killed := model.NewSession(2, "sleep 60", "/")
	killed.Kill(-1)
	for _, session := range []*model.Session{running, exited, killed} {
		require.NoError(t, srv.Save(ctx, session))
	}

	var testCases = []struct {
		description string
		parameters  []*dao.Parameter
		expect      []int
	}{
		{description: "all in start order", expect: []int{3, 1, 2}},
		{description: "running", parameters: []*dao.Parameter{dao.NewParameter(dao.StateParameter, string(model.StateRunning))}, expect: []int{3}},
		{description: "finished", parameters: []*dao.Parameter{dao.NewParameter(dao.StateParameter, string(model.StateExited), string(model.StateKilled))}, expect: []int{1, 2}},
		{description: "no match", parameters: []*dao.Parameter{dao.NewParameter(dao.StateParameter, string(model.StateFailed))}, expect: []int{}},
	}

	for _, testCase := range testCases {
		sessions, err := srv.List(ctx, testCase.parameters...)
		require.NoError(t, err, testCase.description)
		ids := make([]int, 0, len(sessions))
		for _, session := range sessions {
			ids = append(ids, session.ID)
		}
		assert.Equal(t, testCase.expect, ids, testCase.description)
	}

	require.NoError(t, srv.Delete(ctx, running.Key))
	sessions, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestService_RecycledPid(t *testing.T) {
	ctx := context.Background()
	srv := New()

	first := model.NewSession(500, "sleep 1", "/")
	first.Exit(0)
	second := model.NewSession(500, "sleep 2", "/")
	require.NoError(t, srv.Save(ctx, first))
	require.NoError(t, srv.Save(ctx, second))

	sessions, err := srv.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	loaded, err := srv.Load(ctx, first.Key)
	require.NoError(t, err)
	assert.Equal(t, "sleep 1", loaded.CommandLine)
	assert.Equal(t, model.StateExited, loaded.State)
	loaded, err = srv.Load(ctx, second.Key)
	require.NoError(t, err)
	assert.Equal(t, "sleep 2", loaded.CommandLine)
	assert.Equal(t, model.StateRunning, loaded.State)
}
