package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
	"github.com/wanderxuhq/chat-with-page-sub000/bluemonday"
	"github.com/wanderxuhq/chat-with-page-sub000/fs"
	"github.com/wanderxuhq/chat-with-page-sub000/goquery"
	"github.com/wanderxuhq/chat-with-page-sub000/htmltomarkdown"
	cphttp "github.com/wanderxuhq/chat-with-page-sub000/http"
	"github.com/wanderxuhq/chat-with-page-sub000/readability"
	"github.com/wanderxuhq/chat-with-page-sub000/rod"
	cpslog "github.com/wanderxuhq/chat-with-page-sub000/slog"
	"github.com/wanderxuhq/chat-with-page-sub000/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" input. Set before calling Run().
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdin:    m.Stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		ReadFile: os.ReadFile,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatpage"),
		kong.Description("Extract the readable article from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'chatpage --help' to see available commands")
	}
	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if cli.Config != "" {
		fc, err := LoadConfig(cli.Config)
		if err != nil {
			return err
		}
		cli.Extract.ApplyConfig(fc)
	}
	if err := cli.Extract.ApplyDefaults(); err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	closeFetcher, err := m.wire(deps, &cli.Extract, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	return kongCtx.Run(deps)
}

// wire fills deps for the extract command. The returned func releases the
// fetcher.
func (m *Main) wire(deps *Dependencies, cmd *ExtractCmd, logger *slog.Logger) (func(), error) {
	opts, err := cmd.ReadabilityOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger

	var extractor chatpage.Extractor
	switch cmd.Engine {
	case EngineTrafilatura:
		extractor = trafilatura.NewExtractor()
	default:
		extractor = readability.NewExtractor(opts)
	}
	if cmd.Sanitize {
		extractor = bluemonday.NewSanitizingExtractor(extractor)
	}
	deps.Extractor = cpslog.NewLoggingExtractor(extractor, logger)
	deps.Converter = cpslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger)
	deps.References = goquery.NewReferenceExtractor()

	deps.Check = func(rawHTML string) (bool, error) {
		doc, err := html.Parse(strings.NewReader(rawHTML))
		if err != nil {
			return false, chatpage.Errorf(chatpage.EINVALID, "failed to parse HTML: %v", err)
		}
		return readability.IsProbablyReaderable(doc, readability.ReaderableOptions{}), nil
	}

	if cmd.Out != "" && !cmd.Check {
		out, err := filepath.Abs(cmd.Out)
		if err != nil {
			return nil, err
		}
		deps.Store = fs.NewFileStore(filepath.Dir(out), filepath.Base(out))
	}

	if !hasURL(cmd.Inputs) {
		return func() {}, nil
	}

	var fetcher chatpage.Fetcher
	if cmd.Browser {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cmd.Timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		httpOpts := []cphttp.Option{cphttp.WithTimeout(cmd.Timeout)}
		if cmd.UserAgent != "" {
			httpOpts = append(httpOpts, cphttp.WithUserAgent(cmd.UserAgent))
		}
		fetcher = cphttp.NewFetcher(httpOpts...)
	}

	fetcher = cphttp.NewRetryFetcher(fetcher, logger)
	if cmd.RateLimit > 0 {
		fetcher = cphttp.NewRateLimitedFetcher(fetcher, cmd.RateLimit)
	}
	deps.Fetcher = cpslog.NewLoggingFetcher(fetcher, logger)

	return func() { _ = deps.Fetcher.Close() }, nil
}
