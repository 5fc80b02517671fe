package fluxterm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *Config)
		expectErr   []string
	}{
		{description: "default", mutate: func(c *Config) {}},
		{
			description: "shell without flag",
			mutate:      func(c *Config) { c.Shell.Path = "/bin/bash" },
			expectErr:   []string{"shell.flag"},
		},
		{
			description: "aggregated",
			mutate: func(c *Config) {
				c.Process.DrainTimeoutMs = 0
				c.Events.QueueBuffer = -1
				c.History.MaxSize = 0
			},
			expectErr: []string{"drainTimeoutMs", "queueBuffer", "maxSize"},
		},
		{
			description: "tracing without name",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.ServiceName = ""
			},
			expectErr: []string{"tracing.serviceName"},
		},
	}

	for _, testCase := range testCases {
		config := DefaultConfig()
		testCase.mutate(config)
		err := config.Validate()
		if len(testCase.expectErr) == 0 {
			assert.NoError(t, err, testCase.description)
			continue
		}
		require.Error(t, err, testCase.description)
		for _, fragment := range testCase.expectErr {
			assert.Contains(t, err.Error(), fragment, testCase.description)
		}
	}
	var nilConfig *Config
	assert.NoError(t, nilConfig.Validate())
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	t.Setenv("FLUXTERM_TEST_SHELL", "/bin/bash")
	URL := "mem://localhost/fluxterm/test/config.yaml"
	document := `shell:
  path: ${env.FLUXTERM_TEST_SHELL}
  flag: -c
process:
  drainTimeoutMs: 500
history:
  maxSize: 10
`
	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(document)))

	config, err := LoadConfig(ctx, fs, URL)
	require.NoError(t, err)
	assert.Equal(t, "/bin/bash", config.Shell.Path)
	assert.Equal(t, "-c", config.Shell.Flag)
	assert.Equal(t, 500, config.Process.DrainTimeoutMs)
	assert.Equal(t, 10, config.History.MaxSize)
	// defaults survive for keys the document omits
	assert.Equal(t, 256, config.Events.QueueBuffer)

	invalidURL := "mem://localhost/fluxterm/test/invalid.yaml"
	require.NoError(t, fs.Upload(ctx, invalidURL, file.DefaultFileOsMode, strings.NewReader("events:\n  queueBuffer: 0\n")))
	_, err = LoadConfig(ctx, fs, invalidURL)
	assert.ErrorContains(t, err, "queueBuffer")

	_, err = LoadConfig(ctx, fs, "mem://localhost/fluxterm/test/missing.yaml")
	assert.Error(t, err)
}
