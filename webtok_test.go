package webtok

import (
	"slices"
	"strings"
	"testing"

	"github.com/cwerner/webtok/token"
)

func sentenceTexts(sentences [][]token.Token) [][]string {
	out := make([][]string, 0, len(sentences))
	for _, s := range sentences {
		texts := make([]string, 0, len(s))
		for _, t := range s {
			texts = append(texts, t.Text)
		}
		out = append(out, texts)
	}
	return out
}

func collectText(t *testing.T, tok *Tokenizer, paragraphs []string) [][]string {
	t.Helper()
	var sentences [][]token.Token
	for s := range tok.TokenizeText(slices.Values(paragraphs)) {
		sentences = append(sentences, s)
	}
	return sentenceTexts(sentences)
}

func TestNewLanguages(t *testing.T) {
	for _, lang := range []string{"de", "de_CMC", "en", "en_PTB"} {
		if _, err := New(lang); err != nil {
			t.Errorf("New(%q) returned error: %v", lang, err)
		}
	}
	if _, err := New("fr"); err == nil {
		t.Error("New(\"fr\") should return an error")
	}
}

func TestTokenizeText(t *testing.T) {
	tok, err := New("de")
	if err != nil {
		t.Fatal(err)
	}
	got := collectText(t, tok, []string{"Das ist gut. Sehr gut!", "Noch ein Absatz."})
	want := [][]string{
		{"Das", "ist", "gut", "."},
		{"Sehr", "gut", "!"},
		{"Noch", "ein", "Absatz", "."},
	}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeTextNoSentenceSplitting(t *testing.T) {
	tok, err := New("de", WithSentenceSplitting(false))
	if err != nil {
		t.Fatal(err)
	}
	got := collectText(t, tok, []string{"Das ist gut. Sehr gut!"})
	want := [][]string{
		{"Das", "ist", "gut", ".", "Sehr", "gut", "!"},
	}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeTextParallel(t *testing.T) {
	tok, err := New("de", WithParallel(4), WithSentenceSplitting(false))
	if err != nil {
		t.Fatal(err)
	}
	paragraphs := make([]string, 50)
	want := make([][]string, 50)
	for i := range paragraphs {
		word := strings.Repeat("a", i%7+1)
		paragraphs[i] = "Wort " + word + " Ende"
		want[i] = []string{"Wort", word, "Ende"}
	}
	got := collectText(t, tok, paragraphs)
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("parallel output does not match input order: got %v", got)
	}
}

func TestTokenizeTextEmptyParagraphs(t *testing.T) {
	tok, err := New("de")
	if err != nil {
		t.Fatal(err)
	}
	got := collectText(t, tok, []string{"", "   ", "Hallo!"})
	want := [][]string{{"Hallo", "!"}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeTextFile(t *testing.T) {
	tok, err := New("de")
	if err != nil {
		t.Fatal(err)
	}

	seq, err := tok.TokenizeTextFile(strings.NewReader("Erster Satz.\n\nZweiter Satz."), "empty_lines")
	if err != nil {
		t.Fatal(err)
	}
	var sentences [][]token.Token
	for s := range seq {
		sentences = append(sentences, s)
	}
	got := sentenceTexts(sentences)
	want := [][]string{
		{"Erster", "Satz", "."},
		{"Zweiter", "Satz", "."},
	}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := tok.TokenizeTextFile(strings.NewReader(""), "bogus"); err == nil {
		t.Error("invalid paragraph separator should return an error")
	}
}

func TestTokenizeXML(t *testing.T) {
	tok, err := New("de")
	if err != nil {
		t.Fatal(err)
	}
	input := "<doc><p>Das ist gut.</p><p>Sehr gut!</p></doc>"
	var sentences [][]token.Token
	for s, err := range tok.TokenizeXML(strings.NewReader(input), []string{"p"}, false) {
		if err != nil {
			t.Fatal(err)
		}
		sentences = append(sentences, s)
	}
	got := sentenceTexts(sentences)
	want := [][]string{
		{"<doc>", "<p>", "Das", "ist", "gut", ".", "</p>"},
		{"<p>", "Sehr", "gut", "!", "</p>", "</doc>"},
	}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeXMLStripTags(t *testing.T) {
	tok, err := New("de")
	if err != nil {
		t.Fatal(err)
	}
	input := "<doc><p>Das ist gut.</p></doc>"
	var sentences [][]token.Token
	for s, err := range tok.TokenizeXML(strings.NewReader(input), []string{"p"}, true) {
		if err != nil {
			t.Fatal(err)
		}
		sentences = append(sentences, s)
	}
	got := sentenceTexts(sentences)
	want := [][]string{
		{"Das", "ist", "gut", "."},
	}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeXMLMalformed(t *testing.T) {
	tok, err := New("de")
	if err != nil {
		t.Fatal(err)
	}
	var sawErr bool
	for _, err := range tok.TokenizeXML(strings.NewReader("<a><b>kaputt</a>"), []string{"a"}, false) {
		if err != nil {
			sawErr = true
			break
		}
	}
	if !sawErr {
		t.Error("malformed XML should yield an error")
	}
}
