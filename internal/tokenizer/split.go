package tokenizer

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/cwerner/webtok/token"
)

// span marks a half-open rune range [start, end) inside a token's text.
// A replacement, when set, substitutes the matched text and records the
// original spelling on the resulting token.
type span struct {
	start, end int
	repl       string
	hasRepl    bool
}

// skippable reports whether a node is off-limits for the matcher cascade.
func skippable(n *token.Node) bool {
	return n.Token.Markup || n.Token.Locked
}

// findMatches collects all matches of re in text. regexp2 reports rune
// offsets, which line up with the rune slicing done in splitOnBoundaries.
func findMatches(re *regexp2.Regexp, text string) []*regexp2.Match {
	var out []*regexp2.Match
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		out = append(out, m)
		m, err = re.FindNextMatch(m)
	}
	return out
}

// splitOnBoundaries replaces node n with the token sequence induced by the
// boundary spans: for each span the text left of it becomes a plain token,
// the span itself a token of the given class, and after the last span the
// remainder becomes a plain token. Space-after and sentence flags are
// carried over to the edges of the new sequence.
func splitOnBoundaries(ts *token.Stream, n *token.Node, boundaries []span, class token.Class, lock bool) {
	if len(boundaries) == 0 {
		return
	}
	text := []rune(n.Token.Text)
	prevEnd := 0
	lastIdx := len(boundaries) - 1
	for i, b := range boundaries {
		left := string(text[prevEnd:b.start])
		match := string(text[b.start:b.end])
		right := string(text[b.end:])
		prevEnd = b.end

		var originalSpelling string
		if b.hasRepl && match != b.repl {
			originalSpelling = match
			match = b.repl
		}

		leftSpaceAfter := strings.HasSuffix(left, " ") || strings.HasPrefix(match, " ")
		matchSpaceAfter := strings.HasSuffix(match, " ") || strings.HasPrefix(right, " ")
		if !matchSpaceAfter && strings.TrimSpace(right) == "" && i == lastIdx {
			matchSpaceAfter = n.Token.SpaceAfter
		}
		left = strings.TrimSpace(left)
		match = strings.TrimSpace(match)

		firstInSentence := false
		if i == 0 {
			firstInSentence = n.Token.FirstInSentence
		}
		matchLast := false
		rightLast := false
		if i == lastIdx {
			if strings.TrimSpace(right) == "" {
				matchLast = n.Token.LastInSentence
			} else {
				rightLast = n.Token.LastInSentence
			}
		}

		if left != "" {
			ts.InsertLeft(token.Token{
				Text:            left,
				SpaceAfter:      leftSpaceAfter,
				FirstInSentence: firstInSentence,
			}, n)
			firstInSentence = false
		}
		ts.InsertLeft(token.Token{
			Text:             match,
			Class:            class,
			Locked:           lock,
			SpaceAfter:       matchSpaceAfter,
			OriginalSpelling: originalSpelling,
			FirstInSentence:  firstInSentence,
			LastInSentence:   matchLast,
		}, n)
		if i == lastIdx {
			if rest := strings.TrimSpace(right); rest != "" {
				ts.InsertLeft(token.Token{
					Text:           rest,
					SpaceAfter:     n.Token.SpaceAfter,
					LastInSentence: rightLast,
				}, n)
			}
		}
	}
	_ = ts.Remove(n)
}

// splitMatches turns every match of re within the node into a locked token
// of the given class.
func splitMatches(ts *token.Stream, n *token.Node, re *regexp2.Regexp, class token.Class) {
	var boundaries []span
	for _, m := range findMatches(re, n.Token.Text) {
		boundaries = append(boundaries, span{start: m.Index, end: m.Index + m.Length})
	}
	splitOnBoundaries(ts, n, boundaries, class, true)
}

// splitMatchesGroups is like splitMatches but splits each match into one
// token per named capture group. The group names are passed in match order.
func splitMatchesGroups(ts *token.Stream, n *token.Node, re *regexp2.Regexp, groups []string, class token.Class) {
	var boundaries []span
	for _, m := range findMatches(re, n.Token.Text) {
		for _, name := range groups {
			g := m.GroupByName(name)
			if g == nil || len(g.Captures) == 0 {
				continue
			}
			boundaries = append(boundaries, span{start: g.Index, end: g.Index + g.Length})
		}
	}
	splitOnBoundaries(ts, n, boundaries, class, true)
}

// splitAllMatches applies splitMatches to every eligible node of the stream.
func splitAllMatches(ts *token.Stream, re *regexp2.Regexp, class token.Class) {
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		splitMatches(ts, n, re, class)
	}
}

// splitAllMatchesGroups applies splitMatchesGroups to every eligible node.
func splitAllMatchesGroups(ts *token.Stream, re *regexp2.Regexp, groups []string, class token.Class) {
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		splitMatchesGroups(ts, n, re, groups, class)
	}
}

// splitAllSet splits out matches of re that the membership test confirms.
// The candidate pattern over-generates; the set carries the exact surface
// forms.
func splitAllSet(ts *token.Stream, re *regexp2.Regexp, member func(string) bool, class token.Class) {
	for n := range ts.Nodes() {
		if skippable(n) {
			continue
		}
		var boundaries []span
		for _, m := range findMatches(re, n.Token.Text) {
			if member(m.String()) {
				boundaries = append(boundaries, span{start: m.Index, end: m.Index + m.Length})
			}
		}
		splitOnBoundaries(ts, n, boundaries, class, true)
	}
}
