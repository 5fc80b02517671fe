package cmdline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

// Kind classifies a submitted line
type Kind int

const (
	KindEmpty Kind = iota
	KindClear
	KindAssistant
	KindCommand
)

// AssistantPrefix routes the rest of the line to the assistant
const AssistantPrefix = "ai:"

// ErrUnterminatedQuote is returned when a quoted argument is not closed
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Input represents a parsed line
type Input struct {
	Kind    Kind
	Line    string
	Prompt  string
	Command string
	Args    []string
}

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindClear:
		return "clear"
	case KindAssistant:
		return "assistant"
	case KindCommand:
		return "command"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Parse classifies line and splits commands into a name and arguments.
// Quotes are kept on arguments so that joining them with a space yields
// the text the shell receives.
func Parse(line string) (*Input, error) {
	line = strings.TrimSpace(line)
	ret := &Input{Line: line}
	switch {
	case line == "":
		ret.Kind = KindEmpty
		return ret, nil
	case line == "clear" || line == "cls":
		ret.Kind = KindClear
		return ret, nil
	case strings.HasPrefix(line, AssistantPrefix):
		ret.Kind = KindAssistant
		ret.Prompt = strings.TrimSpace(line[len(AssistantPrefix):])
		return ret, nil
	}
	fields, err := Split(line)
	if err != nil {
		return nil, err
	}
	ret.Kind = KindCommand
	ret.Command = fields[0]
	ret.Args = fields[1:]
	return ret, nil
}

// Split tokenizes line on whitespace outside of quotes
func Split(line string) ([]string, error) {
	cursor := parsly.NewCursor("", []byte(line), 0)
	var fields []string
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAfterOptional(whitespaceToken, argumentToken)
		if matched.Code == argumentToken.Code {
			fields = append(fields, matched.Text(cursor))
			continue
		}
		if cursor.Pos >= cursor.InputSize {
			break
		}
		return nil, fmt.Errorf("%w at %d: %v", ErrUnterminatedQuote, cursor.Pos, cursor.NewError(argumentToken))
	}
	return fields, nil
}

// Unquote removes one pair of matching surrounding quotes
func Unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	first, last := text[0], text[len(text)-1]
	if (first == '"' || first == '\'') && first == last {
		return text[1 : len(text)-1]
	}
	return text
}
