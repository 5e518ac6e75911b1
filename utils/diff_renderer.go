package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/meysamhadeli/zettel/compaction"
)

// FormatRenames renders rename pairs as a unified-diff style listing.
func FormatRenames(renames []compaction.Rename) string {
	var sb strings.Builder
	for _, r := range renames {
		sb.WriteString(fmt.Sprintf("- %s\n+ %s\n", r.From, r.To))
	}
	return sb.String()
}

// RenderRenames writes the listing highlighted with the given chroma theme.
// An empty theme writes plain text.
func RenderRenames(w io.Writer, renames []compaction.Rename, theme string) error {
	text := FormatRenames(renames)
	if theme == "" {
		_, err := io.WriteString(w, text)
		return err
	}
	return quick.Highlight(w, text, "diff", "terminal256", theme)
}
