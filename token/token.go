// Package token defines the Token value type produced by the tokenizer and
// the mutable Stream of tokens that the classification cascade edits in place.
package token

// Class categorizes a token. The class drives downstream heuristics such as
// sentence splitting and output annotation.
type Class int

const (
	// Regular is an ordinary word token (the zero value).
	Regular Class = iota
	// Abbreviation is a known or pattern-matched abbreviation, period included.
	Abbreviation
	// URL covers URLs, DOIs and reddit-style links.
	URL
	// Email is an email address, including obfuscated spellings.
	Email
	// XMLTag is a verbatim markup tag found inside a plain-text run.
	XMLTag
	// XMLEntity is a named, decimal or hexadecimal character entity.
	XMLEntity
	// Emoticon is an ASCII or kaomoji emoticon such as ":)" or "(T_T)".
	Emoticon
	// Emoji is a Unicode emoji sequence, including flags and ZWJ sequences.
	Emoji
	// Hashtag is a #-prefixed tag.
	Hashtag
	// Mention is an @-prefixed handle.
	Mention
	// ActionWord is a starred action such as "*grins*".
	ActionWord
	// Date is a calendar date.
	Date
	// Time is a clock time.
	Time
	// Ordinal is an ordinal number ("42." or "3rd").
	Ordinal
	// Number is a cardinal number, fraction, IPv4 address or section number.
	Number
	// NumberCompound is a mixed digit-letter compound such as "Web2.0".
	NumberCompound
	// Amount is a trailing-hyphen amount such as "1.000,-".
	Amount
	// Measurement is a number with a unit ("3,5kg").
	Measurement
	// Semester is a German university term token ("WS15/16").
	Semester
	// Symbol covers punctuation runs, arrows, parens and similar marks.
	Symbol
	// Other is reserved for tokens that fit no category.
	Other
)

// String returns the lowercase wire name of the class, as emitted by the CLI.
func (c Class) String() string {
	switch c {
	case Regular:
		return "regular"
	case Abbreviation:
		return "abbreviation"
	case URL:
		return "url"
	case Email:
		return "email_address"
	case XMLTag:
		return "XML_tag"
	case XMLEntity:
		return "XML_entity"
	case Emoticon:
		return "emoticon"
	case Emoji:
		return "emoji"
	case Hashtag:
		return "hashtag"
	case Mention:
		return "mention"
	case ActionWord:
		return "action_word"
	case Date:
		return "date"
	case Time:
		return "time"
	case Ordinal:
		return "ordinal"
	case Number:
		return "number"
	case NumberCompound:
		return "number_compound"
	case Amount:
		return "amount"
	case Measurement:
		return "measurement"
	case Semester:
		return "semester"
	case Symbol:
		return "symbol"
	default:
		return "other"
	}
}

// MarkupClass distinguishes start tags from end tags on markup tokens.
type MarkupClass int

const (
	// MarkupNone marks a non-markup token (the zero value).
	MarkupNone MarkupClass = iota
	// MarkupStart marks a start tag (self-closing tags count as start+end pair).
	MarkupStart
	// MarkupEnd marks an end tag.
	MarkupEnd
)

// Token is the smallest unit of output text. A token is a plain value; it is
// copied between containers and never shares state once constructed.
type Token struct {
	// Text is the surface string of the token.
	Text string
	// Class is the token class assigned by the classifier.
	Class Class
	// SpaceAfter records whether whitespace followed the token in the source.
	SpaceAfter bool
	// OriginalSpelling holds the source spelling when Text differs from it,
	// e.g. after emoticon space repair. Empty when Text is verbatim.
	OriginalSpelling string
	// Markup is true for verbatim tag tokens produced by the XML chunker.
	Markup bool
	// MarkupClass is MarkupStart or MarkupEnd when Markup is true.
	MarkupClass MarkupClass
	// MarkupEOS is true when the tag always forces a sentence break.
	MarkupEOS bool
	// Locked tokens receive no further splitting edits from the cascade.
	Locked bool
	// FirstInSentence and LastInSentence are set during sentence assembly.
	FirstInSentence bool
	LastInSentence  bool
}

// String returns the token text.
func (t Token) String() string {
	return t.Text
}
