package cli

import (
	"context"
	"errors"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/denv/internal/config"
	"github.com/calvinalkan/denv/pkg/denv"
)

// ExecCmd returns the exec command.
func ExecCmd(cfg config.Config, env map[string]string) *Command {
	return &Command{
		Flags: flag.NewFlagSet("exec", flag.ContinueOnError),
		Usage: "exec PROGRAM [ARGS...]",
		Short: "Inject environment-marked entries then exec PROGRAM",
		Long:  "Install every environment-marked entry into the process environment, then replace the current process image with PROGRAM.",
		Exec: func(_ context.Context, _ *IO, args []string) error {
			return execExec(cfg, env, args)
		},
	}
}

func execExec(cfg config.Config, env map[string]string, args []string) error {
	if len(args) == 0 {
		return errors.New("denv: expected PROGRAM [ARGS...]")
	}

	t, err := openTable(cfg)
	if err != nil {
		return err
	}

	environ := make([]string, 0, len(env))
	for k, v := range env {
		environ = append(environ, k+"="+v)
	}

	return t.Exec(syscallExec, environ, args[0], args[1:])
}

// syscallExec adapts syscall.Exec to denv.ExecFunc; execExec passes it to
// Table.Exec, which takes the exec capability as a parameter so callers
// can supply a fake instead.
var syscallExec denv.ExecFunc = syscall.Exec
