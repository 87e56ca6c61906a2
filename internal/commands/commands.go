package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds     map[string]*Command
	fallback string
	out      io.Writer
}

// NewRegistry returns an empty command registry. fallback names the command run when no
// subcommand is given (e.g. "run"); out receives usage text.
func NewRegistry(fallback string, out io.Writer) *Registry {
	return &Registry{cmds: make(map[string]*Command), fallback: fallback, out: out}
}

// Register adds a subcommand. fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
// The FlagSet is switched to ContinueOnError so parse errors are returned, not fatal.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	fs.Init(name, flag.ContinueOnError)
	fs.SetOutput(r.out)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Empty args, or args starting with a flag, run the fallback command.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		if r.fallback == "" {
			return fmt.Errorf("missing subcommand")
		}
		args = append([]string{r.fallback}, args...)
	}
	name := args[0]
	if name == "help" {
		r.PrintUsage()
		return nil
	}
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}

// PrintUsage writes one line per registered command, sorted by name.
func (r *Registry) PrintUsage() {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(r.out, "  %-8s %s\n", n, r.cmds[n].Usage)
	}
}
