package terminator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/registry"
)

type fakePlatform struct {
	treeErr    error
	processErr error
	tree       []int
	process    []int
}

func (f *fakePlatform) KillTree(_ context.Context, pid int) error {
	f.tree = append(f.tree, pid)
	return f.treeErr
}

func (f *fakePlatform) KillProcess(_ context.Context, pid int) error {
	f.process = append(f.process, pid)
	return f.processErr
}

func TestService_Kill(t *testing.T) {
	var testCases = []struct {
		description string
		register    bool
		treeErr     error
		processErr  error
		expectErr   error
		tree        []int
		process     []int
	}{
		{description: "empty registry", expectErr: ErrNoActiveProcess},
		{description: "tree kill", register: true, tree: []int{314}},
		{description: "fallback kill", register: true, treeErr: errors.New("esrch"), tree: []int{314}, process: []int{314}},
		{description: "both fail", register: true, treeErr: errors.New("eperm"), processErr: errors.New("eperm"),
			expectErr: ErrKillFailed, tree: []int{314}, process: []int{314}},
	}

	for _, testCase := range testCases {
		reg := registry.New()
		var session *model.Session
		if testCase.register {
			session = model.NewSession(314, "sleep 100", "/")
			reg.Set(session)
		}
		platform := &fakePlatform{treeErr: testCase.treeErr, processErr: testCase.processErr}
		srv := New(reg, WithPlatform(platform))

		err := srv.Kill(context.Background())
		if testCase.expectErr != nil {
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
		} else {
			assert.NoError(t, err, testCase.description)
		}
		assert.Equal(t, testCase.tree, platform.tree, testCase.description)
		assert.Equal(t, testCase.process, platform.process, testCase.description)
		assert.Nil(t, reg.Peek(), testCase.description)
		if session != nil {
			assert.True(t, session.KillRequested(), testCase.description)
		}
		assert.ErrorIs(t, srv.Kill(context.Background()), ErrNoActiveProcess, testCase.description)
	}
}

func TestService_Kill_DoneContext(t *testing.T) {
	reg := registry.New()
	session := model.NewSession(314, "sleep 100", "/")
	reg.Set(session)
	platform := &fakePlatform{}
	srv := New(reg, WithPlatform(platform))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, srv.Kill(ctx), context.Canceled)
	assert.Same(t, session, reg.Peek())
	assert.False(t, session.KillRequested())
	assert.Empty(t, platform.tree)

	assert.NoError(t, srv.Kill(context.Background()))
	assert.Equal(t, []int{314}, platform.tree)
}

func TestNew_DefaultPlatform(t *testing.T) {
	srv := New(registry.New())
	assert.NotNil(t, srv.platform)
}
