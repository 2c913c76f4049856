package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/calvinalkan/denv/internal/config"

	flag "github.com/spf13/pflag"
)

// Run is the main entry point. Returns exit code.
// sigCh can be nil if signal handling is not needed (e.g., in tests).
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("denv", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(&strings.Builder{})
	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagVersion := globalFlags.Bool("version", false, "Show version")
	flagBase := globalFlags.StringP("base", "b", "", "Backing `path` for the shared segment")

	if err := globalFlags.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		printGlobalOptions(errOut)

		return 1
	}

	commandAndArgs := globalFlags.Args()

	if *flagHelp || (len(commandAndArgs) == 0 && globalFlags.NFlag() == 0) {
		printUsage(out, allCommands(config.Config{}, env))

		return 0
	}

	if *flagVersion {
		fprintln(out, versionString())

		return 0
	}

	if len(commandAndArgs) == 0 {
		fprintln(errOut, "error: no command provided")
		printUsage(errOut, allCommands(config.Config{}, env))

		return 1
	}

	cmdName := commandAndArgs[0]

	// help and version never need a resolved base path, so they still work
	// when HOME is unset and -b wasn't given.
	switch cmdName {
	case "help":
		printUsage(out, allCommands(config.Config{}, env))
		return 0
	case "version":
		fprintln(out, versionString())
		return 0
	}

	cfg, err := config.Load(*flagBase, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	commands := allCommands(cfg, env)

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	cmd, ok := commandMap[cmdName]
	if !ok {
		fprintln(errOut, "error: unknown command:", cmdName)
		printUsage(errOut, commands)

		return 1
	}

	cmdIO := NewIO(in, out, errOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		done <- cmd.Run(ctx, cmdIO, commandAndArgs[1:])
	}()

	select {
	case exitCode := <-done:
		return exitCode
	case <-sigCh:
		fprintln(errOut, "shutting down with 5s timeout...")
		cancel()
	}

	select {
	case <-done:
		fprintln(errOut, "graceful shutdown ok (130)")

		return 130
	case <-time.After(5 * time.Second):
		fprintln(errOut, "graceful shutdown timed out, forced exit (130)")

		return 130
	case <-sigCh:
		fprintln(errOut, "graceful shutdown interrupted, forced exit (130)")

		return 130
	}
}

// allCommands returns all commands in display order.
// Dependencies are captured via closures in each command constructor.
func allCommands(cfg config.Config, env map[string]string) []*Command {
	return []*Command{
		HelpCmd(),
		VersionCmd(),
		SetCmd(cfg),
		GetCmd(cfg),
		RmCmd(cfg),
		LsCmd(cfg),
		DropCmd(cfg),
		StatsCmd(cfg),
		CleanupCmd(cfg),
		SaveCmd(cfg),
		LoadCmd(cfg),
		AwaitCmd(cfg),
		ExecCmd(cfg, env),
		CloneCmd(cfg, env),
		ExportCmd(cfg),
		DaemonCmd(cfg),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

const globalOptionsHelp = `  -h, --help             Show help
  -b, --base <path>      Override the default backing path ($HOME/.local/share/denv)
  --version              Show version`

func printGlobalOptions(w io.Writer) {
	fprintln(w, "Usage: denv [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprintln(w, globalOptionsHelp)
	fprintln(w)
	fprintln(w, "Run 'denv --help' for a list of commands.")
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "denv - shared-memory key/value store and environment injector")
	fprintln(w)
	fprintln(w, "Usage: denv [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, globalOptionsHelp)
	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}
}
