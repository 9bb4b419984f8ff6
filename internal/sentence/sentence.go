// Package sentence detects sentence boundaries in tokenized text. A
// candidate terminator (sentence-final punctuation or an abbreviation like
// "etc." that can end a sentence) closes a sentence once the following
// material confirms it, so constructs like quoted sentences and parenthesized
// asides keep their trailing punctuation inside the sentence.
package sentence

import (
	"fmt"
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/cwerner/webtok/internal/abbrev"
	"github.com/cwerner/webtok/token"
)

// Splitter marks sentence boundaries on token sequences. A Splitter is
// immutable after New and safe for concurrent use.
type Splitter struct {
	language       string
	table          *abbrev.Table
	sentenceEnding *regexp2.Regexp
	openingPunct   *regexp2.Regexp
	closingPunct   *regexp2.Regexp
}

// New creates a Splitter for the given language ("de" or "en").
func New(language string) (*Splitter, error) {
	table, err := abbrev.ForLanguage(language)
	if err != nil {
		return nil, fmt.Errorf("creating sentence splitter: %w", err)
	}
	s := &Splitter{
		language: language,
		table:    table,
		// full stop, ellipsis, exclamation and question marks
		sentenceEnding: regexp2.MustCompile(`^(?:\.+|…+\.*|[!?]+)$`, regexp2.None),
		openingPunct:   regexp2.MustCompile(`^(?:['"¿¡\p{Pi}\p{Ps}–—]|-{2,})$`, regexp2.None),
	}
	if language == "de" {
		// German opening quotes look like closing punctuation
		s.closingPunct = regexp2.MustCompile(`^['"“\p{Pf}\p{Pe}]$`, regexp2.None)
	} else {
		s.closingPunct = regexp2.MustCompile(`^['"\p{Pf}\p{Pe}]$`, regexp2.None)
	}
	return s, nil
}

// Split partitions a tokenized paragraph into sentences. The input tokens
// are annotated in place with FirstInSentence and LastInSentence.
func (s *Splitter) Split(tokens []token.Token) [][]token.Token {
	s.annotate(tokens)
	var boundaries []int
	for i := range tokens {
		if tokens[i].LastInSentence {
			boundaries = append(boundaries, i+1)
		}
	}
	return partition(tokens, boundaries)
}

// SplitXML partitions a tokenized XML chunk into sentences. Markup tokens
// never start or end a sentence on their own; a sentence absorbs closing
// tags that immediately follow its last word.
func (s *Splitter) SplitXML(tokens []token.Token) [][]token.Token {
	firstInSentence := true
	for i := range tokens {
		t := &tokens[i]
		if t.Markup {
			if t.MarkupEOS {
				// the enclosing element ends a sentence
				for j := i - 1; j >= 0; j-- {
					if !tokens[j].Markup {
						tokens[j].LastInSentence = true
						break
					}
				}
				firstInSentence = true
			}
			continue
		}
		if firstInSentence {
			t.FirstInSentence = true
			firstInSentence = false
		}
	}
	s.annotate(tokens)

	n := len(tokens)
	var boundaries []int
	for i := range tokens {
		if !tokens[i].LastInSentence {
			continue
		}
		b := i
		for j := i + 1; j < n; j++ {
			if tokens[j].Markup && tokens[j].MarkupClass == token.MarkupEnd {
				b++
			} else {
				break
			}
		}
		boundaries = append(boundaries, b+1)
	}
	if len(boundaries) == 0 {
		if n == 0 {
			return nil
		}
		boundaries = []int{n}
	} else if boundaries[len(boundaries)-1] != n {
		// trailing markup belongs to the last sentence
		boundaries[len(boundaries)-1] = n
	}
	return partition(tokens, boundaries)
}

// annotate marks sentence boundaries on the token slice. The last real
// token always ends a sentence. A candidate terminator ends one as soon as
// the next real token starts with an uppercase letter; closing punctuation
// after the candidate moves the boundary rightward, opening punctuation
// keeps it where it is, and anything else cancels the candidate.
func (s *Splitter) annotate(tokens []token.Token) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !tokens[i].Markup {
			tokens[i].LastInSentence = true
			break
		}
	}
	n := len(tokens)
	for i := range tokens {
		t := tokens[i]
		if t.Markup || t.LastInSentence {
			continue
		}
		if !s.endsSentence(t.Text) {
			continue
		}
		last := ""
		lastIdx := i
		firstIdx := -1
	scan:
		for j := i + 1; j < n; j++ {
			tj := tokens[j]
			if tj.Markup {
				continue
			}
			if firstIdx == -1 {
				firstIdx = j
			}
			switch {
			case startsUpper(tj.Text):
				tokens[lastIdx].LastInSentence = true
				tokens[firstIdx].FirstInSentence = true
				break scan
			case s.matches(s.openingPunct, tj.Text) && tj.Text != "“":
				last = "opening"
			case s.matches(s.closingPunct, tj.Text) && last != "opening":
				lastIdx = j
				firstIdx = -1
				last = "closing"
			default:
				break scan
			}
		}
	}
}

// endsSentence reports whether the token text can terminate a sentence.
func (s *Splitter) endsSentence(text string) bool {
	return s.matches(s.sentenceEnding, text) || s.table.IsEOSAbbreviation(text)
}

func (s *Splitter) matches(re *regexp2.Regexp, text string) bool {
	ok, err := re.MatchString(text)
	return err == nil && ok
}

func startsUpper(text string) bool {
	for _, r := range text {
		return unicode.IsUpper(r) || unicode.IsTitle(r)
	}
	return false
}

func partition(tokens []token.Token, boundaries []int) [][]token.Token {
	var sentences [][]token.Token
	start := 0
	for _, b := range boundaries {
		sentences = append(sentences, tokens[start:b])
		start = b
	}
	return sentences
}
