package denv

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ExecFunc is the abstract capability to replace the current process
// image with a named program. Production callers pass syscall.Exec;
// tests pass a fake that records the call instead of actually replacing
// the test binary.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Clone parses environ (NAME=VALUE strings, e.g. os.Environ()) and
// inserts each as an environment-marked entry via Set. Entries without
// an '=' are skipped.
func (t *Table) Clone(environ []string) error {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		if err := t.Set(name, value, FlagIsEnv); err != nil {
			return fmt.Errorf("denv: clone %q: %w", name, err)
		}
	}

	return nil
}

// EnvEntries returns the name/value pairs of every live, environment-
// marked element, in array-then-collision-chain order. Used by both Exec
// and Export.
func (t *Table) EnvEntries() ([][2]string, error) {
	if err := t.mu.Lock(); err != nil {
		return nil, err
	}
	defer t.mu.Unlock()

	var entries [][2]string

	collect := func(e *Element) {
		if e.live() && e.has(FlagIsEnv) {
			name, value := t.nameValue(e.DataIndex)
			entries = append(entries, [2]string{name, value})
		}
	}

	for i := range t.Element.Array {
		collect(&t.Element.Array[i])
	}

	for i := range t.Element.CollisionArray {
		collect(&t.Element.CollisionArray[i])
	}

	return entries, nil
}

// Exec overlays every live IS_ENV entry onto baseEnviron (NAME=VALUE
// strings, e.g. os.Environ()) and replaces the current process image
// with program via execFn. This mirrors setenv(name, value, 1) followed
// by execvp: the child inherits the caller's full environment with
// IS_ENV entries added or overridden on top of it, not a bare
// environment containing only IS_ENV entries. argv is the program's own
// argument vector, not including the program name (execFn receives
// program as argv[0]).
//
// program is resolved against $PATH first, since the underlying exec
// capability (execve) does not search PATH itself.
func (t *Table) Exec(execFn ExecFunc, baseEnviron []string, program string, argv []string) error {
	entries, err := t.EnvEntries()
	if err != nil {
		return err
	}

	envv := overlayEnviron(baseEnviron, entries)

	resolved, err := exec.LookPath(program)
	if err != nil {
		return fmt.Errorf("denv: exec: %w", err)
	}

	fullArgv := append([]string{program}, argv...)

	return execFn(resolved, fullArgv, envv)
}

// overlayEnviron returns base with each entries pair applied via
// setenv-1 semantics: a name already present in base is overwritten in
// place, a name not present is appended.
func overlayEnviron(base []string, entries [][2]string) []string {
	envv := make([]string, len(base), len(base)+len(entries))
	copy(envv, base)

	index := make(map[string]int, len(base))
	for i, kv := range envv {
		name, _, ok := strings.Cut(kv, "=")
		if ok {
			index[name] = i
		}
	}

	for _, kv := range entries {
		full := kv[0] + "=" + kv[1]
		if i, ok := index[kv[0]]; ok {
			envv[i] = full
			continue
		}

		index[kv[0]] = len(envv)
		envv = append(envv, full)
	}

	return envv
}

// Export writes "export NAME=VALUE" lines for every live IS_ENV entry,
// suitable for `source`-ing from a shell.
func (t *Table) Export(w io.Writer) error {
	entries, err := t.EnvEntries()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	for _, kv := range entries {
		if _, err := fmt.Fprintf(bw, "export %s=%s\n", kv[0], kv[1]); err != nil {
			return fmt.Errorf("denv: export: %w", err)
		}
	}

	return bw.Flush()
}
