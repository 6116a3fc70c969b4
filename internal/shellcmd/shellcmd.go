// Package shellcmd turns a single configuration line into a program
// invocation, honoring POSIX-style quoting.
package shellcmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

var (
	// ErrMalformedQuoting is returned when the line cannot be split, e.g. an
	// unterminated quote or a trailing escape.
	ErrMalformedQuoting = errors.New("malformed quoting")
	// ErrEmptyCommand is returned when splitting yields no program name.
	ErrEmptyCommand = errors.New("empty command")
)

// ShellCommand is a program name plus its ordered arguments.
type ShellCommand struct {
	Name string   `json:"name" yaml:"name"`
	Args []string `json:"args" yaml:"args"`
}

// Tokenize splits line into a ShellCommand. The first word is the program,
// the rest are arguments in source order.
func Tokenize(line string) (ShellCommand, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return ShellCommand{}, fmt.Errorf("%w: %v", ErrMalformedQuoting, err)
	}
	if len(words) == 0 || strings.TrimSpace(words[0]) == "" {
		return ShellCommand{}, ErrEmptyCommand
	}
	return ShellCommand{
		Name: words[0],
		Args: append([]string{}, words[1:]...),
	}, nil
}

// Cmd builds the process for c. The program is resolved via PATH and no
// shell is involved.
func (c ShellCommand) Cmd(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, c.Name, c.Args...)
}

// String renders c back into a line that Tokenize would accept.
func (c ShellCommand) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
