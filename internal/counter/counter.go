// Package counter provides output statistics for the webtok CLI.
//
// The package implements several counting strategies over tokenized
// sentences: tokens, word-like tokens, sentences and characters. The CLI
// uses them for its summary report.
package counter

import (
	"fmt"

	"github.com/cwerner/webtok/token"
)

// Counter defines the interface for the different counting strategies.
type Counter interface {
	// Count returns the number of units in the given sentence.
	Count(sentence []token.Token) int

	// Name returns a human-readable name for this counting method.
	Name() string
}

// CountingMethod represents the available counting strategies.
type CountingMethod int

const (
	// Tokens counts every token including punctuation and markup.
	Tokens CountingMethod = iota
	// Words counts tokens that carry lexical material, skipping
	// punctuation symbols and markup.
	Words
	// Sentences counts sentences.
	Sentences
	// Characters counts the runes of all token texts.
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Sentences:
		return "sentences"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter creates a new Counter instance for the specified method.
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Tokens:
		return &tokenCounter{}, nil
	case Words:
		return &wordCounter{}, nil
	case Sentences:
		return &sentenceCounter{}, nil
	case Characters:
		return &charCounter{}, nil
	default:
		return nil, fmt.Errorf("unknown counting method %d", method)
	}
}

// Summary accumulates counts over many sentences.
type Summary struct {
	Sentences  int
	Tokens     int
	Words      int
	Characters int
}

// Add updates the summary with one sentence.
func (s *Summary) Add(sentence []token.Token) {
	s.Sentences++
	s.Tokens += (&tokenCounter{}).Count(sentence)
	s.Words += (&wordCounter{}).Count(sentence)
	s.Characters += (&charCounter{}).Count(sentence)
}

// String formats the summary for the CLI report.
func (s *Summary) String() string {
	return fmt.Sprintf("%d sentences, %d tokens (%d words), %d characters",
		s.Sentences, s.Tokens, s.Words, s.Characters)
}
