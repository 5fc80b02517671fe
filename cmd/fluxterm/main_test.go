//go:build !windows

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	input := strings.NewReader("echo one\n\necho two 1>&2\nexit 4\nexit\necho never\n")
	err := run(context.Background(), "", "", "", input, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "one\n")
	assert.Contains(t, stdout.String(), "Process exited with status: exit status 4\n")
	assert.NotContains(t, stdout.String(), "never")
	assert.Equal(t, "[ERROR] two\n", stderr.String())
}
