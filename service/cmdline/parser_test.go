package cmdline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		line        string
		expect      *Input
		expectErr   bool
	}{
		{
			description: "blank",
			line:        "   ",
			expect:      &Input{Kind: KindEmpty},
		},
		{
			description: "clear",
			line:        " clear ",
			expect:      &Input{Kind: KindClear, Line: "clear"},
		},
		{
			description: "cls",
			line:        "cls",
			expect:      &Input{Kind: KindClear, Line: "cls"},
		},
		{
			description: "assistant",
			line:        "ai:   how do I list files ",
			expect:      &Input{Kind: KindAssistant, Line: "ai:   how do I list files", Prompt: "how do I list files"},
		},
		{
			description: "single command",
			line:        "ls",
			expect:      &Input{Kind: KindCommand, Line: "ls", Command: "ls", Args: []string{}},
		},
		{
			description: "collapsed whitespace",
			line:        "ls \t -la   /tmp",
			expect:      &Input{Kind: KindCommand, Line: "ls \t -la   /tmp", Command: "ls", Args: []string{"-la", "/tmp"}},
		},
		{
			description: "quoted argument",
			line:        `git commit -m "initial import"`,
			expect:      &Input{Kind: KindCommand, Line: `git commit -m "initial import"`, Command: "git", Args: []string{"commit", "-m", `"initial import"`}},
		},
		{
			description: "single quotes inside word",
			line:        `echo pre'a b'post`,
			expect:      &Input{Kind: KindCommand, Line: `echo pre'a b'post`, Command: "echo", Args: []string{`pre'a b'post`}},
		},
		{
			description: "unterminated",
			line:        `echo "oops`,
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		actual, err := Parse(testCase.line)
		if testCase.expectErr {
			assert.ErrorIs(t, err, ErrUnterminatedQuote, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect.Kind, actual.Kind, testCase.description)
		assert.Equal(t, testCase.expect.Line, actual.Line, testCase.description)
		assert.Equal(t, testCase.expect.Prompt, actual.Prompt, testCase.description)
		assert.Equal(t, testCase.expect.Command, actual.Command, testCase.description)
		if testCase.expect.Kind == KindCommand {
			assert.Equal(t, testCase.expect.Args, actual.Args, testCase.description)
		}
	}
}

func TestSplit_RejoinsToShellText(t *testing.T) {
	line := `grep -r 'hello world' "./my dir"`
	fields, err := Split(line)
	require.NoError(t, err)
	assert.Equal(t, line, strings.Join(fields, " "))
}

func TestUnquote(t *testing.T) {
	var testCases = []struct {
		input  string
		expect string
	}{
		{input: `"my dir"`, expect: "my dir"},
		{input: `'x'`, expect: "x"},
		{input: `"mixed'`, expect: `"mixed'`},
		{input: `"`, expect: `"`},
		{input: "plain", expect: "plain"},
		{input: "", expect: ""},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Unquote(testCase.input), testCase.input)
	}
}
