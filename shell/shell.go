// shell/shell.go
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/google/shlex"

	"buttoncode-go/errcode"
)

// Command is one entry in the dispatch table.
type Command struct {
	Name string
	Help string
	Run  func(args []string) error
}

// Shell reads lines, splits them shell-style and dispatches on the
// first token. It is the host-side stand-in for the serial shells the
// reference boards expose.
type Shell struct {
	in     io.Reader
	out    io.Writer
	prompt string
	cmds   map[string]Command
}

func New(in io.Reader, out io.Writer, prompt string) *Shell {
	s := &Shell{in: in, out: out, prompt: prompt, cmds: map[string]Command{}}
	s.Register(Command{Name: "help", Help: "list commands", Run: s.help})
	return s
}

// Register adds a command. Registering a name twice is a programming
// error and panics.
func (s *Shell) Register(cmd Command) {
	if _, exists := s.cmds[cmd.Name]; exists {
		panic("shell: command already registered: " + cmd.Name)
	}
	s.cmds[cmd.Name] = cmd
}

// Run consumes input until EOF or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	sc := bufio.NewScanner(s.in)
	fmt.Fprint(s.out, s.prompt)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.Exec(sc.Text())
		fmt.Fprint(s.out, s.prompt)
	}
	return sc.Err()
}

// Exec parses and dispatches a single line.
func (s *Shell) Exec(line string) {
	args, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(s.out, "err: %s: %v\n", errcode.InvalidParams, err)
		return
	}
	if len(args) == 0 {
		return
	}
	cmd, ok := s.cmds[args[0]]
	if !ok {
		fmt.Fprintf(s.out, "err: %s: %s\n", errcode.UnknownCommand, args[0])
		return
	}
	if cmd.Run == nil {
		return
	}
	if err := cmd.Run(args[1:]); err != nil {
		fmt.Fprintf(s.out, "err: %v\n", err)
	}
}

func (s *Shell) help([]string) error {
	names := make([]string, 0, len(s.cmds))
	for n := range s.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(s.out, "%-8s %s\n", n, s.cmds[n].Help)
	}
	return nil
}
