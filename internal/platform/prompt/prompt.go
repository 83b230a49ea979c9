// Package prompt joins narrative sections into the single text block handed
// to a language model.
package prompt

import (
	"strings"

	"github.com/carenote/carenote/internal/aggregate"
)

// Assemble renders sections in the order given: each section is its title
// followed by its items, one per line, with a blank line between sections.
func Assemble(sections []aggregate.Section) string {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		lines := append([]string{s.Title}, s.Items...)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
