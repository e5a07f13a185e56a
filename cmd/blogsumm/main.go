package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blogsumm"
	"github.com/fwojciec/blogsumm/config"
	bloggin "github.com/fwojciec/blogsumm/gin"
	"github.com/fwojciec/blogsumm/pipeline"
	"github.com/fwojciec/blogsumm/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Set before calling Run().
	Getenv func(string) string

	db      *sqlite.DB
	closers []func(context.Context) error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Close releases every opened store in reverse order.
func (m *Main) Close(ctx context.Context) error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

func (m *Main) onClose(fn func(context.Context) error) {
	m.closers = append(m.closers, fn)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blogsumm"),
		kong.Description("Summarize blog posts and translate the summaries."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'blogsumm --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: check %s and the BLOGSUMM_* environment variables\n", config.EnvConfigPath)
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	defer func() { _ = m.Close(context.WithoutCancel(ctx)) }()

	summaries, err := m.openSummaryService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	documents, err := m.openDocumentStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Extractor: newExtractor(cfg, logger),
		Documents: documents,
		Summaries: summaries,
		Logger:    logger,
	}
	if cfg.AIConfigured() {
		generator, err := newGenerator(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		p.Summarizer = newSummarizer(cfg, generator, logger)
		p.Translator = newTranslator(cfg, generator, logger)
	} else if needsAI(kongCtx.Command()) {
		logger.Warn("GEMINI_API_KEY not set; summarize requests will fail. Get a key at https://aistudio.google.com/apikey")
	}

	deps.Config = cfg
	deps.Logger = logger
	deps.Pipeline = p
	deps.Summaries = summaries
	deps.Server = bloggin.NewServer(p, summaries,
		bloggin.WithLogger(logger),
		bloggin.WithAllowedOrigins(cfg.HTTP.AllowedOrigins),
		bloggin.WithProduction(cfg.IsProduction()),
		bloggin.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
		bloggin.WithShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)

	return kongCtx.Run(deps)
}

func needsAI(command string) bool {
	return strings.HasPrefix(command, "serve") || strings.HasPrefix(command, "summarize")
}

// newLogger builds the process logger from the log settings.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Log.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// printError writes the user-facing message of err to stderr.
func printError(deps *Dependencies, err error) {
	fmt.Fprintf(deps.Stderr, "error: %s\n", blogsumm.ErrorMessage(err))
}
