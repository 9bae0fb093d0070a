package rewriting

import (
	"fmt"
	"io"
)

// Dump writes a human-readable listing of the rule store, tombstones
// included. The format is for debugging only and not a stable contract.
func (s *System) Dump(w io.Writer) {
	_, _ = fmt.Fprintf(w, "rewrite system {\n")
	for i := range s.rules {
		_, _ = fmt.Fprintf(w, "- %d: %s\n", i, s.rules[i])
	}
	_, _ = fmt.Fprintf(w, "}\n")
}
