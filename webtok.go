// Package webtok tokenizes and sentence-splits German and English web and
// social media text. It follows the EmpiriST 2015 guidelines for the
// tokenization of computer-mediated communication: emoticons, hashtags,
// mentions, action words and URLs survive as single tokens, and XML markup
// can be carried through the pipeline untouched.
//
// Basic usage:
//
//	tok, err := webtok.New("de")
//	if err != nil {
//		...
//	}
//	for sentence := range tok.TokenizeText(slices.Values(paragraphs)) {
//		...
//	}
package webtok

import (
	"fmt"
	"io"
	"iter"

	"github.com/cwerner/webtok/internal/fanout"
	"github.com/cwerner/webtok/internal/sentence"
	"github.com/cwerner/webtok/internal/textio"
	"github.com/cwerner/webtok/internal/tokenizer"
	"github.com/cwerner/webtok/internal/xmlstream"
	"github.com/cwerner/webtok/token"
)

// Option configures a Tokenizer.
type Option func(*config)

// config holds tokenizer configuration with defaults.
type config struct {
	splitCamelCase bool
	splitSentences bool
	parallel       int
}

// WithCamelCaseSplitting enables splitting tokens like "soChauvi" at the
// case transition (default: false).
func WithCamelCaseSplitting(enabled bool) Option {
	return func(c *config) {
		c.splitCamelCase = enabled
	}
}

// WithSentenceSplitting controls whether the output is partitioned into
// sentences (default: true). When disabled, each paragraph or XML chunk
// comes back as one token sequence.
func WithSentenceSplitting(enabled bool) Option {
	return func(c *config) {
		c.splitSentences = enabled
	}
}

// WithParallel sets the number of paragraphs tokenized concurrently
// (default: 1). Output order is preserved.
func WithParallel(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.parallel = n
		}
	}
}

// Tokenizer is the top-level entry point of the pipeline. It is immutable
// after New and safe for concurrent use.
type Tokenizer struct {
	language string
	cfg      config
	tok      *tokenizer.Tokenizer
	splitter *sentence.Splitter
}

// New creates a Tokenizer for the given language. Supported languages are
// "de" and "en" plus the guideline aliases "de_CMC" and "en_PTB".
func New(language string, opts ...Option) (*Tokenizer, error) {
	lang, err := normalizeLanguage(language)
	if err != nil {
		return nil, err
	}
	cfg := config{splitSentences: true, parallel: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	tok, err := tokenizer.New(lang, cfg.splitCamelCase)
	if err != nil {
		return nil, err
	}
	splitter, err := sentence.New(lang)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{language: language, cfg: cfg, tok: tok, splitter: splitter}, nil
}

// Language returns the language the Tokenizer was created with.
func (t *Tokenizer) Language() string {
	return t.language
}

// TokenizeText tokenizes a sequence of paragraphs and yields sentences (or
// whole paragraphs if sentence splitting is disabled). Paragraphs are
// processed concurrently when WithParallel is set; output order always
// follows input order.
func (t *Tokenizer) TokenizeText(paragraphs iter.Seq[string]) iter.Seq[[]token.Token] {
	process := func(paragraph string) [][]token.Token {
		tokens := t.tok.TokenizeParagraph(paragraph)
		if len(tokens) == 0 {
			return nil
		}
		if t.cfg.splitSentences {
			return t.splitter.Split(tokens)
		}
		return [][]token.Token{tokens}
	}
	results := fanout.Map(paragraphs, t.cfg.parallel, process)
	return func(yield func([]token.Token) bool) {
		for sentences := range results {
			for _, s := range sentences {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// TokenizeTextFile tokenizes plain text from r. paragraphSeparator selects
// how paragraph boundaries are recognized: "empty_lines" or
// "single_newlines".
func (t *Tokenizer) TokenizeTextFile(r io.Reader, paragraphSeparator string) (iter.Seq[[]token.Token], error) {
	sep, err := textio.ParseSeparator(paragraphSeparator)
	if err != nil {
		return nil, err
	}
	return t.TokenizeText(textio.Paragraphs(r, sep)), nil
}

// TokenizeXML tokenizes XML data from r. eosTags are the elements that
// constitute sentence breaks, i.e. that never occur in the middle of a
// sentence. With stripTags, markup tokens are removed from the output.
// Malformed XML stops the iteration with an error.
func (t *Tokenizer) TokenizeXML(r io.Reader, eosTags []string, stripTags bool) iter.Seq2[[]token.Token, error] {
	return func(yield func([]token.Token, error) bool) {
		chunker := xmlstream.NewChunker(r, eosTags)
		for chunk, err := range chunker.Chunks() {
			if err != nil {
				yield(nil, err)
				return
			}
			t.tok.TokenizeStream(chunk)
			tokens := chunk.Tokens()
			if len(tokens) == 0 {
				continue
			}
			var sentences [][]token.Token
			if t.cfg.splitSentences {
				sentences = t.splitter.SplitXML(tokens)
			} else {
				sentences = [][]token.Token{tokens}
			}
			for _, s := range sentences {
				if stripTags {
					s = withoutMarkup(s)
				}
				if len(s) == 0 {
					continue
				}
				if !yield(s, nil) {
					return
				}
			}
		}
	}
}

func withoutMarkup(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Markup {
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalizeLanguage(language string) (string, error) {
	switch language {
	case "de", "de_CMC":
		return "de", nil
	case "en", "en_PTB":
		return "en", nil
	default:
		return "", fmt.Errorf("unsupported language %q (supported: de, de_CMC, en, en_PTB)", language)
	}
}
