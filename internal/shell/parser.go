package shell

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ParsedCommand represents a parsed command input.
type ParsedCommand struct {
	Name string
	Args []string
}

// Argv returns the parsed line as a full argument vector, name first.
func (p ParsedCommand) Argv() []string {
	if p.Name == "" {
		return nil
	}
	return append([]string{p.Name}, p.Args...)
}

// ParseLine splits a shell line into a command name and arguments. Quoting
// follows POSIX shell rules, so `add "buy milk"` yields one title argument.
// A leading ':' is accepted and dropped. Blank lines and comments yield a zero
// ParsedCommand.
func ParseLine(input string) (ParsedCommand, error) {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, ":")

	if input == "" || strings.HasPrefix(input, "#") {
		return ParsedCommand{}, nil
	}

	parts, err := shellwords.Parse(input)
	if err != nil {
		return ParsedCommand{}, fmt.Errorf("parse %q: %w", input, err)
	}

	if len(parts) == 0 {
		return ParsedCommand{}, nil
	}

	return ParsedCommand{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}, nil
}
