package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/blogsumm"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	rec, err := deps.Pipeline.Run(deps.Ctx, c.URL)
	if err != nil {
		printError(deps, err)
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	printRecord(deps.Stdout, rec, false)
	return nil
}

// printRecord writes a human readable rendition of rec.
func printRecord(w io.Writer, rec *blogsumm.SummaryRecord, full bool) {
	fmt.Fprintf(w, "%s\n%s\n\n", rec.Title, rec.URL)
	fmt.Fprintf(w, "Summary (%s):\n%s\n\n", rec.Strategy, rec.Summary)
	fmt.Fprintf(w, "Translation:\n%s\n", rec.TranslatedSummary)

	if len(rec.KeyPoints) > 0 {
		fmt.Fprintln(w, "\nKey points:")
		for _, p := range rec.KeyPoints {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}

	fmt.Fprintf(w, "\nWords: %d -> %d (ratio %.2f), reading time %d min\n",
		rec.WordCount, rec.SummaryWordCount, rec.CompressionRatio, rec.ReadingTimeMinutes)
	fmt.Fprintf(w, "ID: %s\n", rec.ID)

	if full {
		fmt.Fprintf(w, "\n%s\n%s\n", strings.Repeat("-", 40), rec.FullText)
	}
}
