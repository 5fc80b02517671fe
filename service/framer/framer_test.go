package framer

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestFramer_Lines(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      []string
	}{
		{description: "empty stream", input: "", expect: nil},
		{description: "single terminated line", input: "hello\n", expect: []string{"hello"}},
		{description: "trailing partial line", input: "a\nb\npartial", expect: []string{"a", "b", "partial"}},
		{description: "crlf", input: "one\r\ntwo\r\n", expect: []string{"one", "two"}},
		{description: "blank lines kept", input: "\n\nx\n", expect: []string{"", "", "x"}},
	}

	for _, testCase := range testCases {
		actual := slices.Collect(Lines(strings.NewReader(testCase.input)))
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestFramer_SmallReads(t *testing.T) {
	reader := iotest.OneByteReader(strings.NewReader("alpha\nbeta\ngam"))
	actual := slices.Collect(Lines(reader))
	assert.Equal(t, []string{"alpha", "beta", "gam"}, actual)
}

func TestFramer_ResumesAcrossCalls(t *testing.T) {
	f := New(strings.NewReader("1\n2\n3\n4\n"))
	var first []string
	for line := range f.Lines() {
		first = append(first, line)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", "2"}, first)

	rest := slices.Collect(f.Lines())
	assert.Equal(t, []string{"3", "4"}, rest)
	assert.NoError(t, f.Err())
	assert.Empty(t, slices.Collect(f.Lines()))
}

func TestFramer_ReadError(t *testing.T) {
	boom := errors.New("boom")
	reader := io.MultiReader(strings.NewReader("ok\nhalf"), iotest.ErrReader(boom))
	f := New(reader)
	actual := slices.Collect(f.Lines())
	assert.Equal(t, []string{"ok", "half"}, actual)
	assert.ErrorIs(t, f.Err(), boom)
}
