// Package app contains the core application logic for the webtok CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cwerner/webtok"
	"github.com/cwerner/webtok/internal/counter"
	"github.com/cwerner/webtok/internal/input"
	"github.com/cwerner/webtok/internal/spinner"
	"github.com/cwerner/webtok/token"
)

// Config holds all configuration options for the webtok application.
type Config struct {
	Sources            []string // file paths or "-" for stdin
	Language           string   // de, de_CMC, en, en_PTB
	SplitCamelCase     bool     // split tokens at lowercase-uppercase transitions
	SplitSentences     bool     // partition the output into sentences
	ParagraphSeparator string   // empty_lines or single_newlines
	XML                bool     // treat input as XML
	EOSTags            []string // XML tags that constitute sentence breaks
	StripTags          bool     // remove markup tokens from XML output
	Parallel           int      // number of concurrently tokenized paragraphs
	TokenClasses       bool     // print the class of each token
	ExtraInfo          bool     // print SpaceAfter and OriginalSpelling info
	Summary            bool     // print counts to stderr when done
	Quiet              bool     // suppress the progress spinner
	Debug              bool
}

// Run executes the webtok pipeline for all configured sources and writes one
// token per line to w, with an empty line terminating each sentence.
//
// ctx allows for cancellation of long-running tokenization jobs.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no sources provided")
	}

	tok, err := webtok.New(cfg.Language,
		webtok.WithCamelCaseSplitting(cfg.SplitCamelCase),
		webtok.WithSentenceSplitting(cfg.SplitSentences),
		webtok.WithParallel(cfg.Parallel),
	)
	if err != nil {
		return err
	}

	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, "tokenizing")
		sp.Start()
		defer sp.Stop()
	}

	var summary counter.Summary
	for _, source := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		slog.Debug("processing source", "source", source)
		if err := processSource(ctx, tok, cfg, source, w, &summary, sp); err != nil {
			return fmt.Errorf("processing %q: %w", source, err)
		}
	}

	if sp != nil {
		sp.Stop()
	}
	if cfg.Summary {
		fmt.Fprintln(os.Stderr, summary.String())
	}

	return nil
}

// processSource tokenizes a single source and streams its sentences to w.
func processSource(ctx context.Context, tok *webtok.Tokenizer, cfg Config, source string, w io.Writer, summary *counter.Summary, sp *spinner.Spinner) error {
	r, err := input.Open(source)
	if err != nil {
		return err
	}
	defer r.Close()

	emit := func(sentence []token.Token) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sp != nil {
			sp.Add(len(sentence))
		}
		summary.Add(sentence)
		return writeSentence(w, sentence, cfg)
	}

	if cfg.XML {
		for sentence, err := range tok.TokenizeXML(r, cfg.EOSTags, cfg.StripTags) {
			if err != nil {
				return err
			}
			if err := emit(sentence); err != nil {
				return err
			}
		}
		return nil
	}

	sentences, err := tok.TokenizeTextFile(r, cfg.ParagraphSeparator)
	if err != nil {
		return err
	}
	for sentence := range sentences {
		if err := emit(sentence); err != nil {
			return err
		}
	}
	return nil
}

// writeSentence prints one token per line, tab-separated from its optional
// class and extra info columns, followed by an empty line.
func writeSentence(w io.Writer, sentence []token.Token, cfg Config) error {
	var sb strings.Builder
	for _, t := range sentence {
		sb.WriteString(t.Text)
		if cfg.TokenClasses {
			sb.WriteByte('\t')
			sb.WriteString(t.Class.String())
		}
		if cfg.ExtraInfo {
			sb.WriteByte('\t')
			sb.WriteString(extraInfo(t))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// extraInfo renders the SpaceAfter and OriginalSpelling annotations of a
// token, e.g. `SpaceAfter=No, OriginalSpelling=": )"`.
func extraInfo(t token.Token) string {
	var parts []string
	if !t.SpaceAfter {
		parts = append(parts, "SpaceAfter=No")
	}
	if t.OriginalSpelling != "" {
		parts = append(parts, "OriginalSpelling=\""+t.OriginalSpelling+"\"")
	}
	return strings.Join(parts, ", ")
}
