package cli

import (
	"bufio"
	"strings"
)

// confirm reads one line from in and reports whether it is "y" or "yes"
// (case-insensitive). Used by `drop` and `load` (unless -f is given)
// before a destructive operation.
func confirm(o *IO, prompt string) (bool, error) {
	o.Printf("%s [y/N] ", prompt)

	line, err := bufio.NewReader(o.In()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}
