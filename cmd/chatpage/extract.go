package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// result is the outcome of processing one input.
type result struct {
	input      string
	article    *chatpage.Article
	output     string
	markdown   string
	readerable bool
	err        error
}

// Run executes the extract command. Inputs are processed concurrently and
// reported in the order given. A failing input is reported on stderr and
// does not stop the others.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if len(c.Inputs) == 0 {
		return chatpage.Errorf(chatpage.EINVALID, "no inputs given")
	}
	stdin := 0
	for _, input := range c.Inputs {
		if input == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return chatpage.Errorf(chatpage.EINVALID, "stdin can only be read once")
	}

	format := firstString(c.Format, defaultFormat)
	compact := len(c.Inputs) > 1

	results := make([]result, len(c.Inputs))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for i, input := range c.Inputs {
		g.Go(func() error {
			results[i] = c.process(ctx, deps, input, format, compact)
			return nil
		})
	}
	_ = g.Wait()

	var failed, saved int
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.input, errorText(r.err))
			continue
		}

		switch {
		case c.Check:
			label := "readerable"
			if !r.readerable {
				label = "not readerable"
			}
			fmt.Fprintf(deps.Stdout, "%s\t%s\n", r.input, label)
		case deps.Store != nil:
			page := &chatpage.Page{Source: r.input, Article: r.article, Content: r.markdown}
			if err := deps.Store.Save(deps.Ctx, page); err != nil {
				_ = deps.Store.Abort()
				fmt.Fprintf(deps.Stderr, "error saving %s: %s\n", r.input, errorText(err))
				return err
			}
			saved++
		default:
			if len(c.Inputs) > 1 && format != FormatJSON {
				if i > 0 {
					fmt.Fprintln(deps.Stdout)
				}
				fmt.Fprintf(deps.Stdout, "==> %s <==\n", r.input)
			}
			fmt.Fprint(deps.Stdout, r.output)
		}
	}

	if deps.Store != nil && !c.Check {
		if saved > 0 {
			if err := deps.Store.Commit(); err != nil {
				fmt.Fprintf(deps.Stderr, "error committing: %s\n", errorText(err))
				return err
			}
			fmt.Fprintf(deps.Stdout, "Saved %d pages to %s\n", saved, c.Out)
		} else {
			_ = deps.Store.Abort()
			fmt.Fprintln(deps.Stdout, "No pages saved")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(c.Inputs))
	}
	return nil
}

func (c *ExtractCmd) process(ctx context.Context, deps *Dependencies, input, format string, compact bool) result {
	r := result{input: input}

	raw, pageURL, err := c.load(ctx, deps, input)
	if err != nil {
		r.err = err
		return r
	}

	if c.Check {
		r.readerable, r.err = deps.Check(raw)
		return r
	}

	r.article, r.err = deps.Extractor.Extract(raw, pageURL)
	if r.err != nil {
		return r
	}

	if deps.Store != nil {
		r.markdown, r.err = deps.Converter.Convert(r.article.Content)
		return r
	}
	r.output, r.err = render(deps, r.article, format, compact)
	return r
}

// load reads input from stdin, a URL or a local file and returns its markup
// with the URL relative links resolve against.
func (c *ExtractCmd) load(ctx context.Context, deps *Dependencies, input string) (string, string, error) {
	switch {
	case input == "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), c.BaseURL, nil
	case isURL(input):
		if deps.Fetcher == nil {
			return "", "", chatpage.Errorf(chatpage.EINVALID, "no fetcher configured for %s", input)
		}
		html, err := deps.Fetcher.Fetch(ctx, input)
		if err != nil {
			return "", "", err
		}
		return html, input, nil
	default:
		data, err := deps.ReadFile(input)
		if errors.Is(err, os.ErrNotExist) {
			return "", "", chatpage.Errorf(chatpage.ENOTFOUND, "file not found")
		} else if err != nil {
			return "", "", err
		}
		return string(data), c.BaseURL, nil
	}
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// hasURL reports whether any input must be fetched.
func hasURL(inputs []string) bool {
	for _, input := range inputs {
		if isURL(input) {
			return true
		}
	}
	return false
}

// errorText prefers the user-facing message of application errors and falls
// back to the error text for everything else.
func errorText(err error) string {
	if chatpage.ErrorCode(err) == chatpage.EINTERNAL {
		return err.Error()
	}
	return chatpage.ErrorMessage(err)
}
