package main

import (
	"context"
	"io"
	"time"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Fetcher    chatpage.Fetcher
	Extractor  chatpage.Extractor
	Converter  chatpage.Converter
	References chatpage.ReferenceExtractor

	// Store is set when pages are written to a directory instead of stdout.
	Store chatpage.PageStore

	// ReadFile loads local HTML inputs.
	ReadFile func(name string) ([]byte, error)

	// Check reports whether a page probably holds an article.
	Check func(rawHTML string) (bool, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" env:"CHATPAGE_CONFIG" help:"YAML config file"`
	Verbose bool   `short:"v" help:"Log fetch and extraction details to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract the readable article from web pages"`
}

// ExtractCmd is the "extract" subcommand. Settings left at their zero value
// are taken from the config file, then from built-in defaults.
type ExtractCmd struct {
	Inputs   []string `arg:"" name:"input" help:"HTML files, http(s) URLs, or - for stdin"`
	Format   string   `short:"f" help:"Output format: html, text, markdown, json or prompt (default markdown)"`
	Out      string   `short:"o" help:"Write pages as Markdown with front matter into this directory"`
	Check    bool     `help:"Only report whether each page looks like an article"`
	BaseURL  string   `name:"base-url" help:"URL used to resolve relative links in files and stdin"`
	Sanitize bool     `short:"s" help:"Strip scripts, event handlers and unsafe URLs from extracted HTML"`

	Engine      string        `short:"e" help:"Extraction engine: readability or trafilatura (default readability)"`
	Browser     bool          `short:"b" help:"Render URLs in headless Chrome before extracting"`
	Concurrency int           `short:"c" help:"Inputs processed in parallel (default 4)"`
	Timeout     time.Duration `short:"t" help:"Fetch timeout per page (default 10s)"`
	RateLimit   float64       `name:"rate-limit" help:"Requests per second per host, 0 for unlimited"`
	UserAgent   string        `name:"user-agent" help:"User-Agent sent with HTTP requests"`

	CharThreshold       int      `name:"char-threshold" help:"Minimum article length before heuristics are relaxed (default 500)"`
	NbTopCandidates     int      `name:"top-candidates" help:"Top scored candidates compared (default 5)"`
	MaxElems            int      `name:"max-elems" help:"Refuse documents with more elements, 0 for unlimited"`
	PreserveClasses     []string `name:"preserve-class" help:"Class kept on extracted elements (repeatable)"`
	KeepClasses         bool     `name:"keep-classes" help:"Keep every class attribute"`
	DisableJSONLD       bool     `name:"no-json-ld" help:"Ignore JSON-LD metadata"`
	LinkDensityModifier float64  `name:"link-density-modifier" help:"Shift link density limits used when cleaning"`
	VideoRegex          string   `name:"video-regex" help:"Regex of embeds that survive cleaning"`
}
