package tokenizer

import "unicode"

// emojiBase covers the pictographic blocks we recognize as emoji cores.
// The regex engines in use have no Extended_Pictographic property, so emoji
// sequences are found with a plain rune scan instead.
var emojiBase = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1}, // misc symbols, dingbats
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1}, // misc symbols and arrows
	},
	R32: []unicode.Range32{
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // misc symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1}, // symbols and pictographs extended
	},
}

const (
	zeroWidthJoiner    = 0x200D
	variationSelector  = 0xFE0F
	textStyleSelector  = 0xFE0E
	skinToneLo         = 0x1F3FB
	skinToneHi         = 0x1F3FF
	regionalIndicLo    = 0x1F1E6
	regionalIndicHi    = 0x1F1FF
	combiningEnclosing = 0x20E3 // keycap
)

func isEmojiBase(r rune) bool {
	return unicode.Is(emojiBase, r)
}

func isEmojiModifier(r rune) bool {
	return r == variationSelector || r == textStyleSelector ||
		(r >= skinToneLo && r <= skinToneHi) || r == combiningEnclosing
}

func isRegionalIndicator(r rune) bool {
	return r >= regionalIndicLo && r <= regionalIndicHi
}

// isKeycapBase reports whether r can start a keycap sequence like 1️⃣.
func isKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

// emojiBoundaries scans text for emoji sequences and returns their rune
// spans. A sequence is an emoji core plus trailing modifiers, optionally
// chained with zero-width joiners, or a pair of regional indicators (a flag).
// The scan runs before junk characters are stripped because the joiners
// would otherwise be gone.
func emojiBoundaries(text string) []span {
	runes := []rune(text)
	var spans []span
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case isRegionalIndicator(r):
			start := i
			i++
			if i < len(runes) && isRegionalIndicator(runes[i]) {
				i++
			}
			if i < len(runes) && runes[i] == variationSelector {
				i++
			}
			spans = append(spans, span{start: start, end: i})
		case isKeycapBase(r) && i+1 < len(runes) &&
			(runes[i+1] == variationSelector || runes[i+1] == combiningEnclosing):
			start := i
			i++
			for i < len(runes) && (runes[i] == variationSelector || runes[i] == combiningEnclosing) {
				i++
			}
			spans = append(spans, span{start: start, end: i})
		case isEmojiBase(r):
			start := i
			i++
			for i < len(runes) {
				if isEmojiModifier(runes[i]) {
					i++
					continue
				}
				// joiner glues the next pictograph into the same sequence
				if runes[i] == zeroWidthJoiner && i+1 < len(runes) && isEmojiBase(runes[i+1]) {
					i += 2
					continue
				}
				break
			}
			spans = append(spans, span{start: start, end: i})
		default:
			i++
		}
	}
	return spans
}
