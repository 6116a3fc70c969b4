package shellcmd

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestTokenizeQuotedArgs(t *testing.T) {
	cmd, err := Tokenize(`testcmd "first arg" 1 second third`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := ShellCommand{Name: "testcmd", Args: []string{"first arg", "1", "second", "third"}}
	if !reflect.DeepEqual(cmd, want) {
		t.Fatalf("got %+v, want %+v", cmd, want)
	}
}

func TestTokenizePreservesInnerWhitespace(t *testing.T) {
	cmd, err := Tokenize(`name arg1 'arg  two' arg3`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if cmd.Name != "name" {
		t.Fatalf("name = %q", cmd.Name)
	}
	if !reflect.DeepEqual(cmd.Args, []string{"arg1", "arg  two", "arg3"}) {
		t.Fatalf("args = %q", cmd.Args)
	}
}

func TestTokenizeNoArgs(t *testing.T) {
	cmd, err := Tokenize("poweroff")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if cmd.Name != "poweroff" || len(cmd.Args) != 0 {
		t.Fatalf("unexpected %+v", cmd)
	}
}

func TestTokenizeKeepsCase(t *testing.T) {
	cmd, err := Tokenize(`Notify-Send "Hello World"`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if cmd.Name != "Notify-Send" || cmd.Args[0] != "Hello World" {
		t.Fatalf("case not preserved: %+v", cmd)
	}
}

func TestTokenizeMalformed(t *testing.T) {
	for _, line := range []string{`echo "unterminated`, `echo 'half`, `echo trailing\`} {
		cmd, err := Tokenize(line)
		if !errors.Is(err, ErrMalformedQuoting) {
			t.Fatalf("%q: expected ErrMalformedQuoting, got %v", line, err)
		}
		if cmd.Name != "" || cmd.Args != nil {
			t.Fatalf("%q: partial result %+v", line, cmd)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, line := range []string{"", "   ", `""`, `"  " arg`} {
		if _, err := Tokenize(line); !errors.Is(err, ErrEmptyCommand) {
			t.Fatalf("%q: expected ErrEmptyCommand, got %v", line, err)
		}
	}
}

func TestCmdConversion(t *testing.T) {
	sc, err := Tokenize(`testcmd "first arg" 1 second third`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	cmd := sc.Cmd(context.Background())
	if !reflect.DeepEqual(cmd.Args, []string{"testcmd", "first arg", "1", "second", "third"}) {
		t.Fatalf("argv = %q", cmd.Args)
	}
}

func TestStringRoundTrips(t *testing.T) {
	in := ShellCommand{Name: "echo", Args: []string{"bye now", "it's", ""}}
	out, err := Tokenize(in.String())
	if err != nil {
		t.Fatalf("tokenize %q: %v", in.String(), err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}
