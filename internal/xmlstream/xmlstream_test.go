package xmlstream

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cwerner/webtok/token"
)

func collect(t *testing.T, input string, eosTags []string) [][]token.Token {
	t.Helper()
	var chunks [][]token.Token
	for chunk, err := range NewChunker(strings.NewReader(input), eosTags).Chunks() {
		if err != nil {
			t.Fatalf("Chunks: %v", err)
		}
		chunks = append(chunks, chunk.Tokens())
	}
	return chunks
}

func texts(tokens []token.Token, keepSpace bool) []string {
	var out []string
	for _, tok := range tokens {
		if !keepSpace && !tok.Markup && strings.TrimSpace(tok.Text) == "" {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

func TestChunkBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		eosTags   []string
		keepSpace bool
		want      [][]string
	}{
		{
			name:    "single element",
			input:   "<doc>Hallo Welt</doc>",
			eosTags: []string{"doc"},
			want:    [][]string{{"<doc>", "Hallo Welt", "</doc>"}},
		},
		{
			name:    "two paragraphs",
			input:   "<doc><p>Erster</p><p>Zweiter</p></doc>",
			eosTags: []string{"p"},
			want: [][]string{
				{"<doc>", "<p>", "Erster", "</p>"},
				{"<p>", "Zweiter", "</p>", "</doc>"},
			},
		},
		{
			name:      "inline markup stays in chunk",
			input:     "<p>Sehr <b>wichtig</b> hier</p>",
			eosTags:   []string{"p"},
			keepSpace: true,
			want:      [][]string{{"<p>", "Sehr ", "<b>", "wichtig", "</b>", " hier", "</p>"}},
		},
		{
			name:    "eos start tag after running text",
			input:   "<doc>davor<p>danach</p></doc>",
			eosTags: []string{"p"},
			want: [][]string{
				{"<doc>", "davor"},
				{"<p>", "danach", "</p>", "</doc>"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := collect(t, tt.input, tt.eosTags)
			got := make([][]string, len(chunks))
			for i, chunk := range chunks {
				got[i] = texts(chunk, tt.keepSpace)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("chunks = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkupAnnotations(t *testing.T) {
	chunks := collect(t, `<doc id="1">Hallo</doc>`, []string{"doc"})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	tokens := chunks[0]
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}

	start := tokens[0]
	if start.Text != `<doc id="1">` {
		t.Errorf("start tag text = %q", start.Text)
	}
	if !start.Markup || !start.Locked || start.Class != token.XMLTag {
		t.Errorf("start tag not marked as locked markup: %+v", start)
	}
	if start.MarkupClass != token.MarkupStart || !start.MarkupEOS {
		t.Errorf("start tag annotations wrong: %+v", start)
	}

	end := tokens[2]
	if end.MarkupClass != token.MarkupEnd || !end.MarkupEOS {
		t.Errorf("end tag annotations wrong: %+v", end)
	}

	if tokens[1].Markup || tokens[1].Locked {
		t.Errorf("character data should stay editable: %+v", tokens[1])
	}
}

func TestAttributeEscaping(t *testing.T) {
	chunks := collect(t, `<doc title="a &amp; b">x</doc>`, nil)
	got := chunks[0][0].Text
	want := `<doc title="a &amp; b">`
	if got != want {
		t.Errorf("start tag = %q, want %q", got, want)
	}
}

func TestNonEOSTagsSingleChunk(t *testing.T) {
	chunks := collect(t, "<a><b>eins</b><b>zwei</b></a>", nil)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
}

func TestMalformedXML(t *testing.T) {
	ch := NewChunker(strings.NewReader("<a><b>kaputt</a>"), nil)
	var sawErr bool
	for _, err := range ch.Chunks() {
		if err != nil {
			sawErr = true
			break
		}
	}
	if !sawErr {
		t.Fatal("expected an error for mismatched tags")
	}
}
