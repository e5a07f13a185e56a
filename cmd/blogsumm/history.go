package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/blogsumm"
	"github.com/mattn/go-runewidth"
)

// titleWidth caps the title column of the history listing, in terminal cells.
const titleWidth = 48

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := blogsumm.SummaryFilter{Offset: c.Offset, Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	records, err := deps.Summaries.FindSummaries(deps.Ctx, filter)
	if err != nil {
		printError(deps, err)
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No summaries found. Use 'blogsumm summarize' to create one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.CreatedAt.Format(time.DateTime), runewidth.Truncate(r.Title, titleWidth, "…"), r.URL)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Summaries.FindSummaryByID(deps.Ctx, c.ID)
	if err != nil {
		printError(deps, err)
		return err
	}

	printRecord(deps.Stdout, rec, c.Full)
	return nil
}
