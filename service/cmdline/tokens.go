package cmdline

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota + 1
	argumentCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	argumentToken   = parsly.NewToken(argumentCode, "Argument", &argumentMatcher{})
)

// argumentMatcher matches a run of non whitespace bytes, quoted sections
// may contain whitespace and are kept with their quotes
type argumentMatcher struct{}

func (m *argumentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	size := cursor.InputSize
	i := cursor.Pos
	for i < size {
		c := input[i]
		if isWhitespace(c) {
			break
		}
		if c == '"' || c == '\'' {
			end := indexByte(input, i+1, size, c)
			if end == -1 {
				return 0
			}
			i = end + 1
			continue
		}
		i++
	}
	return i - cursor.Pos
}

func indexByte(input []byte, from, size int, c byte) int {
	for i := from; i < size; i++ {
		if input[i] == c {
			return i
		}
	}
	return -1
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
