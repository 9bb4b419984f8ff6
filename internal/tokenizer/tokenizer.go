// Package tokenizer implements the rule-based matcher cascade that splits
// paragraphs of noisy web text into tokens. The cascade runs over a doubly
// linked token stream and carves recognized units (URLs, emoticons, dates,
// abbreviations and so on) out of the running text, locking them against later,
// more general matchers.
package tokenizer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cwerner/webtok/internal/abbrev"
	"github.com/cwerner/webtok/token"
)

// Tokenizer splits text according to the tokenization guidelines for
// computer-mediated communication. A Tokenizer is immutable after New and
// safe for concurrent use.
type Tokenizer struct {
	language       string
	splitCamelCase bool
	table          *abbrev.Table
	p              *patterns
}

// New creates a Tokenizer for the given language ("de" or "en"). When
// splitCamelCase is set, tokens like "soChauvi" are split at the case
// transition.
func New(language string, splitCamelCase bool) (*Tokenizer, error) {
	table, err := abbrev.ForLanguage(language)
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer: %w", err)
	}
	return &Tokenizer{
		language:       language,
		splitCamelCase: splitCamelCase,
		table:          table,
		p:              patternsFor(language, table),
	}, nil
}

// Language returns the language profile the Tokenizer was created for.
func (t *Tokenizer) Language() string {
	return t.language
}

// TokenizeParagraph tokenizes a single paragraph of running text.
func (t *Tokenizer) TokenizeParagraph(paragraph string) []token.Token {
	ts := token.NewStream(token.Token{
		Text:            paragraph,
		SpaceAfter:      true,
		FirstInSentence: true,
		LastInSentence:  true,
	})
	t.TokenizeStream(ts)
	return ts.Tokens()
}

// TokenizeStream runs the matcher cascade over the stream in place. Markup
// tokens and locked tokens are left untouched, so a stream produced by the
// XML chunker can be passed in directly.
func (t *Tokenizer) TokenizeStream(ts *token.Stream) {
	t.normalize(ts)

	// Some tokens are allowed to contain whitespace. Get those out of the
	// way first.
	splitAllMatches(ts, t.p.xmlDeclaration, token.XMLTag)
	splitAllMatches(ts, t.p.tag, token.XMLTag)
	// obfuscated email addresses may contain spaces
	splitAllMatches(ts, t.p.email, token.Email)

	// Emoji sequences can contain zero-width joiners, which the junk
	// removal below would strip.
	t.splitEmojis(ts)

	t.splitWhitespace(ts)

	// urls
	splitAllMatches(ts, t.p.simpleURLWithBrackets, token.URL)
	splitAllMatches(ts, t.p.simpleURL, token.URL)
	splitAllMatches(ts, t.p.doi, token.URL)
	splitAllMatches(ts, t.p.doiWithSpace, token.URL)
	splitAllMatches(ts, t.p.urlWithoutProtocol, token.URL)
	splitAllMatches(ts, t.p.redditLinks, token.URL)

	splitAllMatches(ts, t.p.entity, token.XMLEntity)

	// emoticons
	splitAllMatches(ts, t.p.heartEmoticon, token.Emoticon)
	splitAllMatches(ts, t.p.emoticon, token.Emoticon)

	// mentions, hashtags
	splitAllMatches(ts, t.p.mention, token.Mention)
	splitAllMatches(ts, t.p.hashtag, token.Hashtag)
	// action words
	splitAllMatchesGroups(ts, t.p.actionWord, []string{"a_open", "b_middle", "c_close"}, token.ActionWord)
	// a pair of underscores can "underline" a stretch of text
	splitAllMatchesGroups(ts, t.p.underline, []string{"a_open", "b_text", "c_close"}, token.Regular)
	// textual representations of emoji
	splitAllMatches(ts, t.p.emojiWord, token.Emoticon)

	// tokens with + or &
	splitAllMatches(ts, t.p.plusAmpersandToken, token.Regular)
	splitAllSet(ts, t.p.plusAmpersandCandidate, t.table.IsSimplePlusAmpersand, token.Regular)

	if t.splitCamelCase {
		t.splitCamelCaseTokens(ts)
	}

	// gender star
	splitAllMatches(ts, t.p.genderStar, token.Regular)

	if t.language == "en" {
		t.splitEnglishContractions(ts)
	}

	t.splitAbbreviations(ts)
	t.splitDatesAndNumbers(ts)
	t.splitPunctuation(ts)
}

// normalize brings every unprocessed token into NFC and cleans up
// whitespace, control characters and stranded variation selectors.
func (t *Tokenizer) normalize(ts *token.Stream) {
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		text := norm.NFC.String(n.Token.Text)
		text = spacesRE.ReplaceAllString(text, " ")
		text = controlsRE.ReplaceAllString(text, "")
		text = strandedVariationRE.ReplaceAllString(text, "")
		text = spacesRE.ReplaceAllString(text, " ")
		n.Token.Text = text
	}
}

// splitEmojis carves out flag sequences and other emoji.
func (t *Tokenizer) splitEmojis(ts *token.Stream) {
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		splitOnBoundaries(ts, n, emojiBoundaries(n.Token.Text), token.Emoji, true)
	}
}

// splitWhitespace strips the remaining junk characters, repairs emoticons
// with erroneous internal spaces and splits every token on whitespace.
func (t *Tokenizer) splitWhitespace(ts *token.Stream) {
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		text := otherNastiesRE.ReplaceAllString(n.Token.Text, "")
		n.Token.Text = spacesRE.ReplaceAllString(text, " ")
	}
	// ": )" is a smiley with an erroneous space
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		var boundaries []span
		for _, m := range findMatches(t.p.spaceEmoticon, n.Token.Text) {
			repl := m.GroupByNumber(1).String() + m.GroupByNumber(2).String()
			boundaries = append(boundaries, span{
				start:   m.Index,
				end:     m.Index + m.Length,
				repl:    repl,
				hasRepl: true,
			})
		}
		splitOnBoundaries(ts, n, boundaries, token.Emoticon, true)
	}
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		fields := strings.Fields(n.Token.Text)
		for i, f := range fields {
			tok := token.Token{Text: f, SpaceAfter: true}
			if i == 0 {
				tok.FirstInSentence = n.Token.FirstInSentence
			}
			if i == len(fields)-1 {
				tok.SpaceAfter = n.Token.SpaceAfter
				tok.LastInSentence = n.Token.LastInSentence
			}
			ts.InsertLeft(tok, n)
		}
		_ = ts.Remove(n)
	}
}

func (t *Tokenizer) splitCamelCaseTokens(ts *token.Stream) {
	splitAllMatches(ts, t.p.camelCaseToken, token.Regular)
	splitAllSet(ts, t.p.camelCaseCandidate, t.table.IsSimpleCamelCase, token.Regular)
	splitAllMatches(ts, t.p.inAndInnen, token.Regular)
	// generic split at lower-to-upper transitions; the pieces stay
	// ordinary unlocked tokens
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		var starts []int
		for _, m := range findMatches(t.p.camelCase, n.Token.Text) {
			starts = append(starts, m.Index)
		}
		if len(starts) == 0 {
			continue
		}
		var boundaries []span
		prev := 0
		for _, s := range starts {
			boundaries = append(boundaries, span{start: prev, end: s})
			prev = s
		}
		boundaries = append(boundaries, span{start: prev, end: len([]rune(n.Token.Text))})
		splitOnBoundaries(ts, n, boundaries, token.Regular, false)
	}
}

// splitEnglishContractions separates possessive and contracted forms:
// "isn't" becomes "is" and "n't", "everyone's" keeps its clitic as "'s".
func (t *Tokenizer) splitEnglishContractions(ts *token.Stream) {
	splitAllMatches(ts, t.p.englishDecades, token.NumberCompound)
	splitAllMatches(ts, t.p.enDMS, token.Regular)
	splitAllMatches(ts, t.p.enLLREVE, token.Regular)
	splitAllMatches(ts, t.p.enNot, token.Regular)
	for _, contr := range t.p.enTwoPartContr {
		splitAllMatchesGroups(ts, contr, []string{"p1", "p2"}, token.Regular)
	}
	for _, contr := range t.p.enThreePartContr {
		splitAllMatchesGroups(ts, contr, []string{"p1", "p2", "p3"}, token.Regular)
	}
	splitAllMatches(ts, t.p.enNonbreakingWords, token.Regular)
	splitAllMatches(ts, t.p.enNonbreakingPre, token.Regular)
	splitAllMatches(ts, t.p.enNonbreakingSuf, token.Regular)
}

// splitAbbreviations carves out known abbreviations so that their dots do
// not end up as sentence-final punctuation. For German, multipart
// abbreviations like "z.B." that are not single-token exceptions are split
// after every internal dot.
func (t *Tokenizer) splitAbbreviations(ts *token.Stream) {
	splitAllMatchesGroups(ts, t.p.singleLetterEllipsis, []string{"a_letter", "b_ellipsis"}, token.Abbreviation)
	splitAllMatches(ts, t.p.andCetera, token.Abbreviation)
	splitAllMatches(ts, t.p.strAbbreviation, token.Abbreviation)
	splitAllMatches(ts, t.p.nrAbbreviation, token.Abbreviation)
	splitAllMatches(ts, t.p.singleTokenAbbreviation, token.Abbreviation)
	splitAllMatches(ts, t.p.singleLetterAbbreviation, token.Abbreviation)

	splitMultipart := t.language != "en"
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		var boundaries []span
		for _, m := range findMatches(t.p.abbreviation, n.Token.Text) {
			instance := []rune(m.String())
			if splitMultipart && t.isMultipartAbbreviation(m.String()) {
				start := m.Index
				s := start
				for i, c := range instance {
					if c == '.' {
						boundaries = append(boundaries, span{start: s, end: start + i + 1})
						s = start + i + 1
					}
				}
			} else {
				boundaries = append(boundaries, span{start: m.Index, end: m.Index + m.Length})
			}
		}
		splitOnBoundaries(ts, n, boundaries, token.Abbreviation, true)
	}
}

func (t *Tokenizer) isMultipartAbbreviation(s string) bool {
	ok, err := t.p.multipartAbbreviation.MatchString(s)
	return err == nil && ok
}

func (t *Tokenizer) splitDatesAndNumbers(ts *token.Stream) {
	// for German, dates are split into their parts
	if t.language == "en" {
		splitAllMatches(ts, t.p.threePartDateYearFirst, token.Date)
		splitAllMatches(ts, t.p.threePartDateDMY, token.Date)
		splitAllMatches(ts, t.p.threePartDateMDY, token.Date)
		splitAllMatches(ts, t.p.twoPartDate, token.Date)
	} else {
		splitAllMatchesGroups(ts, t.p.threePartDateYearFirst, []string{"a_year", "b_month", "c_day"}, token.Date)
		splitAllMatchesGroups(ts, t.p.threePartDateDMY, []string{"a_day", "b_month", "c_year"}, token.Date)
		splitAllMatchesGroups(ts, t.p.threePartDateMDY, []string{"a_month", "b_day", "c_year"}, token.Date)
		splitAllMatchesGroups(ts, t.p.twoPartDate, []string{"a_first", "b_second"}, token.Date)
	}
	if t.language == "en" {
		splitAllMatchesGroups(ts, t.p.enTime, []string{"a_time", "b_ampm"}, token.Time)
	}
	splitAllMatches(ts, t.p.timeOfDay, token.Time)
	if t.language == "en" {
		splitAllMatches(ts, t.p.enUSPhoneNumber, token.Number)
		splitAllMatches(ts, t.p.enUSZipCode, token.Number)
		splitAllMatches(ts, t.p.enNumericalIdentifier, token.Number)
	}
	if t.language == "de" {
		splitAllMatches(ts, t.p.ordinal, token.Ordinal)
	} else if t.language == "en" {
		splitAllMatches(ts, t.p.englishOrdinal, token.Ordinal)
	}
	splitAllMatches(ts, t.p.fraction, token.Number)
	// amounts (1.000,-)
	splitAllMatches(ts, t.p.amount, token.Amount)
	splitAllMatchesGroups(ts, t.p.semester, []string{"a_term", "b_year"}, token.Semester)
	splitAllMatchesGroups(ts, t.p.measurement, []string{"a_amount", "b_unit"}, token.Measurement)
	splitAllMatches(ts, t.p.numberCompound, token.NumberCompound)
	splitAllMatches(ts, t.p.number, token.Number)
	splitAllMatches(ts, t.p.ipv4, token.Number)
	splitAllMatches(ts, t.p.sectionNumber, token.Number)
}

func (t *Tokenizer) splitPunctuation(ts *token.Stream) {
	splitAllMatches(ts, t.p.questExclam, token.Symbol)
	splitAllMatches(ts, t.p.arrow, token.Symbol)
	splitAllMatches(ts, t.p.paren, token.Symbol)
	if t.language == "en" {
		splitAllMatches(ts, t.p.enSlashWords, token.Regular)
	}
	if t.language == "de" {
		splitAllMatches(ts, t.p.deSlash, token.Symbol)
	}
	// O'Connor and French omitted vowels: L'Enfer, d'accord
	splitAllMatches(ts, t.p.letterApostrophe, token.Regular)
	if t.language == "en" {
		splitAllMatches(ts, t.p.enHyphen, token.Symbol)
		splitAllMatches(ts, t.p.enQuotationMarks, token.Symbol)
		splitAllMatches(ts, t.p.enOtherPunctuation, token.Symbol)
	} else {
		splitAllMatches(ts, t.p.otherPunctuation, token.Symbol)
	}
	splitAllMatches(ts, t.p.ellipsis, token.Symbol)
	splitAllMatches(ts, t.p.dotWithoutSpace, token.Symbol)
	splitAllMatches(ts, t.p.dot, token.Symbol)
}
