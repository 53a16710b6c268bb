package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/resume-parser/internal/form"
)

// Text writes a plain text rendition of the form state.
func Text(w io.Writer, snap form.Snapshot) error {
	var b strings.Builder

	if result := snap.Results(); result != nil {
		fmt.Fprintf(&b, "%s\n%s\n%s\n", ResultsHeading, MatchLabel(result), Suitability(result))

		matched := result.MatchingKeywords()
		if len(matched) > 0 || len(result.RankedPhrases) > 0 {
			fmt.Fprintf(&b, "\n%s\n", KeywordsHeading)
		}
		if len(matched) > 0 {
			fmt.Fprintf(&b, "  matched: %s\n", strings.Join(matched, ", "))
		}
		if len(result.RankedPhrases) > 0 {
			fmt.Fprintf(&b, "  top phrases: %s\n", strings.Join(result.RankedPhrases, ", "))
		}

		_, err := io.WriteString(w, b.String())
		return err
	}

	if snap.File != nil {
		fmt.Fprintf(&b, "Resume: %s\n", snap.File.Name)
	}
	if snap.IsLoading() {
		fmt.Fprintf(&b, "%s\n", LoadingLabel)
	}
	if msg := snap.Error(); msg != "" {
		fmt.Fprintf(&b, "%s\n", msg)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
