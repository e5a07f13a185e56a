package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/config"
	bloggin "github.com/fwojciec/blogsumm/gin"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    config.Config
	Logger    *slog.Logger
	Pipeline  blogsumm.Pipeline
	Summaries blogsumm.SummaryService
	Server    *bloggin.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" type:"path" help:"Path to a YAML config file"`

	Serve     ServeCmd     `cmd:"" help:"Run the HTTP API"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize and translate a blog post"`
	History   HistoryCmd   `cmd:"" help:"List stored summaries, newest first"`
	Show      ShowCmd      `cmd:"" help:"Show a stored summary"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides config)"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	URL  string `arg:"" help:"Blog post URL"`
	JSON bool   `help:"Print the stored record as JSON"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `help:"Only show summaries of this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of summaries"`
	Offset int    `help:"Number of summaries to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Summary ID"`
	Full bool   `help:"Include the full article text"`
}
