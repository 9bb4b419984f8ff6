// Package abbrev provides the per-language lexicons that drive the tokenizer
// cascade and the sentence splitter: abbreviations, camel-case exceptions,
// tokens containing + or &, and English non-breaking hyphenation lists.
//
// Every lexicon is embedded at build time, loaded once per language and
// immutable afterwards, so a single Table may be shared by any number of
// concurrent readers.
package abbrev

import (
	"bufio"
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.txt
var dataFS embed.FS

// Table holds the lexicons for one language. All fields are populated during
// construction and never mutated afterwards.
type Table struct {
	language string

	abbreviations     []string // longest first
	abbreviationSet   map[string]struct{}
	singleToken       []string // multi-dot abbreviations that stay one token
	eos               map[string]struct{}
	camelCaseTokens   []string // exceptions containing non-word characters
	simpleCamelCase   map[string]struct{}
	plusAmpersand     []string // exceptions containing non-word characters
	simplePlusAmp     map[string]struct{}
	nonbreakingPrefix []string
	nonbreakingSuffix []string
	nonbreakingWords  []string
}

var (
	tableMu sync.Mutex
	tables  = map[string]*Table{}
)

// ForLanguage returns the shared lexicon table for "de" or "en". The table is
// built on first use and cached; callers must treat it as read-only.
func ForLanguage(language string) (*Table, error) {
	if language != "de" && language != "en" {
		return nil, fmt.Errorf("abbrev: unsupported language %q", language)
	}
	tableMu.Lock()
	defer tableMu.Unlock()
	if t, ok := tables[language]; ok {
		return t, nil
	}
	t, err := load(language)
	if err != nil {
		return nil, err
	}
	tables[language] = t
	return t, nil
}

func load(language string) (*Table, error) {
	t := &Table{language: language}

	abbrevs, err := readList("data/abbreviations_" + language + ".txt")
	if err != nil {
		return nil, err
	}
	t.abbreviations = abbrevs
	t.abbreviationSet = make(map[string]struct{}, len(abbrevs))
	for _, a := range abbrevs {
		t.abbreviationSet[strings.ToLower(a)] = struct{}{}
	}

	if t.singleToken, err = readList("data/single_token_abbreviations_" + language + ".txt"); err != nil {
		return nil, err
	}
	for _, a := range t.singleToken {
		t.abbreviationSet[strings.ToLower(a)] = struct{}{}
	}

	eos, err := readList("data/eos_abbreviations.txt")
	if err != nil {
		return nil, err
	}
	t.eos = make(map[string]struct{}, len(eos))
	for _, a := range eos {
		t.eos[strings.ToLower(a)] = struct{}{}
	}

	camel, err := readList("data/camel_case_tokens.txt")
	if err != nil {
		return nil, err
	}
	t.simpleCamelCase = make(map[string]struct{})
	for _, c := range camel {
		if isWordOnly(c) {
			t.simpleCamelCase[c] = struct{}{}
		} else {
			t.camelCaseTokens = append(t.camelCaseTokens, c)
		}
	}

	plusAmp, err := readList("data/tokens_with_plus_or_ampersand.txt")
	if err != nil {
		return nil, err
	}
	t.simplePlusAmp = make(map[string]struct{})
	for _, p := range plusAmp {
		if isSimplePlusAmp(p) {
			t.simplePlusAmp[strings.ToLower(p)] = struct{}{}
		} else {
			t.plusAmpersand = append(t.plusAmpersand, p)
		}
	}

	if language == "en" {
		if t.nonbreakingPrefix, err = readList("data/non-breaking_prefixes_en.txt"); err != nil {
			return nil, err
		}
		if t.nonbreakingSuffix, err = readList("data/non-breaking_suffixes_en.txt"); err != nil {
			return nil, err
		}
		if t.nonbreakingWords, err = readList("data/non-breaking_hyphenated_words_en.txt"); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// readList reads one entry per line, ignoring blank lines and # comments,
// and returns the entries sorted longest first so that alternations built
// from them prefer the longest match.
func readList(name string) ([]string, error) {
	f, err := dataFS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("abbrev: reading %s: %w", name, err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("abbrev: reading %s: %w", name, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i]) != len(entries[j]) {
			return len(entries[i]) > len(entries[j])
		}
		return entries[i] < entries[j]
	})
	return entries, nil
}

func isWordOnly(s string) bool {
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return s != ""
}

// isSimplePlusAmp reports whether s is word+word or word&word with no other
// special characters.
func isSimplePlusAmp(s string) bool {
	i := strings.IndexAny(s, "+&")
	if i <= 0 || i == len(s)-1 {
		return false
	}
	return isWordOnly(s[:i]) && isWordOnly(s[i+1:])
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r > 0x7F:
		// treat all non-ASCII letters as word characters, mirroring \w
		return true
	}
	return false
}

// Language returns the language tag the table was built for.
func (t *Table) Language() string { return t.language }

// IsAbbreviation reports whether s (case-insensitive) is a known abbreviation.
func (t *Table) IsAbbreviation(s string) bool {
	_, ok := t.abbreviationSet[strings.ToLower(s)]
	return ok
}

// IsEOSAbbreviation reports whether s may legitimately end a sentence.
func (t *Table) IsEOSAbbreviation(s string) bool {
	_, ok := t.eos[strings.ToLower(s)]
	return ok
}

// Abbreviations returns the plain abbreviation list, longest first.
func (t *Table) Abbreviations() []string { return t.abbreviations }

// SingleTokenAbbreviations returns multi-dot abbreviations that must stay
// one token, longest first.
func (t *Table) SingleTokenAbbreviations() []string { return t.singleToken }

// CamelCaseTokens returns camel-case exceptions that contain non-word
// characters and therefore need a regex alternation.
func (t *Table) CamelCaseTokens() []string { return t.camelCaseTokens }

// IsSimpleCamelCase reports whether s is a camel-case exception consisting of
// word characters only (case-sensitive, original casing).
func (t *Table) IsSimpleCamelCase(s string) bool {
	_, ok := t.simpleCamelCase[s]
	return ok
}

// PlusAmpersandTokens returns +/& exceptions that need a regex alternation.
func (t *Table) PlusAmpersandTokens() []string { return t.plusAmpersand }

// IsSimplePlusAmpersand reports whether s (case-insensitive) is a known
// word+word or word&word token.
func (t *Table) IsSimplePlusAmpersand(s string) bool {
	_, ok := t.simplePlusAmp[strings.ToLower(s)]
	return ok
}

// NonbreakingPrefixes returns English prefixes that keep a following hyphen
// attached ("anti-war" stays one token). Empty for German.
func (t *Table) NonbreakingPrefixes() []string { return t.nonbreakingPrefix }

// NonbreakingSuffixes returns English suffixes that keep a preceding hyphen
// attached. Empty for German.
func (t *Table) NonbreakingSuffixes() []string { return t.nonbreakingSuffix }

// NonbreakingWords returns English hyphenated words that stay one token.
// Empty for German.
func (t *Table) NonbreakingWords() []string { return t.nonbreakingWords }
