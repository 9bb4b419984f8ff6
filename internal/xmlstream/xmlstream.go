// Package xmlstream turns XML input into chunks of token streams. Markup
// becomes locked tokens that the tokenizer passes through untouched; the
// character data between tags stays editable. Chunk boundaries are drawn at
// sentence-delimiting tags so that downstream processing never has to look
// across a chunk.
package xmlstream

import (
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/cwerner/webtok/token"
)

// Chunker reads XML and produces one token stream per stretch of input
// delimited by sentence-breaking tags.
type Chunker struct {
	dec     *xml.Decoder
	eosTags map[string]bool
}

// NewChunker creates a Chunker over r. eosTags are the names of elements
// that constitute sentence breaks, i.e. that never occur in the middle of a
// sentence (for HTML something like p, h1, div, ul, table).
func NewChunker(r io.Reader, eosTags []string) *Chunker {
	set := make(map[string]bool, len(eosTags))
	for _, t := range eosTags {
		set[t] = true
	}
	return &Chunker{dec: xml.NewDecoder(r), eosTags: set}
}

// Chunks iterates over the token stream chunks. Iteration stops after the
// first error; malformed XML is fatal.
func (c *Chunker) Chunks() iter.Seq2[*token.Stream, error] {
	return func(yield func(*token.Stream, error) bool) {
		chunk := token.NewStream()
		textTokens := 0
		flushAfter := false

		flush := func() bool {
			if chunk.Len() == 0 {
				flushAfter = false
				return true
			}
			ok := yield(chunk, nil)
			chunk = token.NewStream()
			textTokens = 0
			flushAfter = false
			return ok
		}

		for {
			t, err := c.dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				yield(nil, fmt.Errorf("parsing XML input: %w", err))
				return
			}
			switch t := t.(type) {
			case xml.CharData:
				text := string(t)
				if flushAfter && !flush() {
					return
				}
				chunk.Append(token.Token{Text: text, SpaceAfter: true})
				if strings.TrimSpace(text) != "" {
					textTokens++
				}
			case xml.StartElement:
				if flushAfter && !flush() {
					return
				}
				eos := c.eosTags[t.Name.Local]
				// an eos tag must not interrupt a sentence, so
				// running text before it ends a chunk
				if eos && textTokens > 0 && !flush() {
					return
				}
				chunk.Append(token.Token{
					Text:        renderStartTag(t),
					Class:       token.XMLTag,
					SpaceAfter:  true,
					Markup:      true,
					MarkupClass: token.MarkupStart,
					MarkupEOS:   eos,
					Locked:      true,
				})
			case xml.EndElement:
				eos := c.eosTags[t.Name.Local]
				chunk.Append(token.Token{
					Text:        "</" + t.Name.Local + ">",
					Class:       token.XMLTag,
					SpaceAfter:  true,
					Markup:      true,
					MarkupClass: token.MarkupEnd,
					MarkupEOS:   eos,
					Locked:      true,
				})
				if eos {
					// keep appending closing tags; the flush happens
					// lazily so that a run of </a></p> stays together
					flushAfter = true
				}
			}
		}
		if chunk.Len() > 0 {
			yield(chunk, nil)
		}
	}
}

// renderStartTag reconstructs the surface form of a start tag. Namespace
// prefixes are dropped; attribute values are always double-quoted.
func renderStartTag(e xml.StartElement) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(e.Name.Local)
	for _, attr := range e.Attr {
		sb.WriteString(" ")
		sb.WriteString(attr.Name.Local)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(attr.Value))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	return sb.String()
}

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
