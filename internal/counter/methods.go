package counter

import (
	"unicode/utf8"

	"github.com/cwerner/webtok/token"
)

// tokenCounter counts every token, markup included.
type tokenCounter struct{}

func (c *tokenCounter) Count(sentence []token.Token) int {
	return len(sentence)
}

func (c *tokenCounter) Name() string {
	return "tokens"
}

// wordCounter counts tokens that carry lexical material.
type wordCounter struct{}

func (c *wordCounter) Count(sentence []token.Token) int {
	words := 0
	for _, t := range sentence {
		if t.Markup {
			continue
		}
		switch t.Class {
		case token.Symbol, token.XMLTag, token.XMLEntity:
			continue
		}
		words++
	}
	return words
}

func (c *wordCounter) Name() string {
	return "words"
}

// sentenceCounter counts whole sentences.
type sentenceCounter struct{}

func (c *sentenceCounter) Count(sentence []token.Token) int {
	if len(sentence) == 0 {
		return 0
	}
	return 1
}

func (c *sentenceCounter) Name() string {
	return "sentences"
}

// charCounter counts the runes of all token texts.
type charCounter struct{}

func (c *charCounter) Count(sentence []token.Token) int {
	chars := 0
	for _, t := range sentence {
		chars += utf8.RuneCountInString(t.Text)
	}
	return chars
}

func (c *charCounter) Name() string {
	return "characters"
}
