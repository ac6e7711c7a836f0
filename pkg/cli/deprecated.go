package cli

import (
	"fmt"
	"io"
	"slices"
	"time"
)

// Rename maps a retired flag to its replacement.
type Rename struct {
	Old string
	New string
}

// DeprecatedFlags are rewritten before parsing.
var DeprecatedFlags = []Rename{
	{Old: "--debug_mode", New: "--verbose"},
}

// RenamePause is how long the rename notice stays on screen.
const RenamePause = 1500 * time.Millisecond

// RewriteDeprecated returns args with every retired flag replaced by its
// successor, which is appended at the end. A notice is printed to out and
// sleep is called once per rename. args is not modified.
func RewriteDeprecated(args []string, out io.Writer, sleep func(time.Duration)) []string {
	if sleep == nil {
		sleep = time.Sleep
	}
	rewritten := slices.Clone(args)
	for _, r := range DeprecatedFlags {
		if !slices.Contains(rewritten, r.Old) {
			continue
		}
		fmt.Fprintf(out, "\n`%s` has been renamed to `%s`.\n\n", r.Old, r.New)
		sleep(RenamePause)
		rewritten = slices.DeleteFunc(rewritten, func(a string) bool { return a == r.Old })
		rewritten = append(rewritten, r.New)
	}
	return rewritten
}
