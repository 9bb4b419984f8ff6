package tokenizer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cwerner/webtok/token"
)

func tokenTexts(tokens []token.Token) []string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return texts
}

// reconstruct rebuilds the surface string from tokens and their SpaceAfter
// annotations.
func reconstruct(tokens []token.Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if tok.OriginalSpelling != "" {
			sb.WriteString(tok.OriginalSpelling)
		} else {
			sb.WriteString(tok.Text)
		}
		if tok.SpaceAfter && i < len(tokens)-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func TestNewUnsupportedLanguage(t *testing.T) {
	if _, err := New("fr", false); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestTokenizeGerman(t *testing.T) {
	tok, err := New("de", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain sentence",
			input: "Das ist ein Test.",
			want:  []string{"Das", "ist", "ein", "Test", "."},
		},
		{
			name:  "single token abbreviation",
			input: "Das ist z.B. ein Test.",
			want:  []string{"Das", "ist", "z.B.", "ein", "Test", "."},
		},
		{
			name:  "multipart abbreviation is split",
			input: "Die U.S.A. sind groß.",
			want:  []string{"Die", "U.", "S.", "A.", "sind", "groß", "."},
		},
		{
			name:  "question and exclamation marks cluster",
			input: "Echt jetzt?!",
			want:  []string{"Echt", "jetzt", "?!"},
		},
		{
			name:  "url",
			input: "Siehe www.example.com für Details.",
			want:  []string{"Siehe", "www.example.com", "für", "Details", "."},
		},
		{
			name:  "email address",
			input: "Schreib an info@example.com bitte.",
			want:  []string{"Schreib", "an", "info@example.com", "bitte", "."},
		},
		{
			name:  "hashtag and mention",
			input: "@alice kennt #webtok",
			want:  []string{"@alice", "kennt", "#webtok"},
		},
		{
			name:  "emoticon",
			input: "Super :-)",
			want:  []string{"Super", ":-)"},
		},
		{
			name:  "number with thousands separator",
			input: "Das kostet 1.999,95 Euro.",
			want:  []string{"Das", "kostet", "1.999,95", "Euro", "."},
		},
		{
			name:  "date is split into parts",
			input: "Am 13.07.2008 war es soweit.",
			want:  []string{"Am", "13.", "07.", "2008", "war", "es", "soweit", "."},
		},
		{
			name:  "time of day",
			input: "Wir treffen uns um 6:30 Uhr.",
			want:  []string{"Wir", "treffen", "uns", "um", "6:30", "Uhr", "."},
		},
		{
			name:  "ordinal number",
			input: "Am 3. Mai",
			want:  []string{"Am", "3.", "Mai"},
		},
		{
			name:  "measurement without space",
			input: "Er wiegt 20kg und mehr.",
			want:  []string{"Er", "wiegt", "20", "kg", "und", "mehr", "."},
		},
		{
			name:  "action word",
			input: "Ich freue mich *lach* darauf.",
			want:  []string{"Ich", "freue", "mich", "*", "lach", "*", "darauf", "."},
		},
		{
			name:  "gender star stays intact",
			input: "Die Lehrer*innen kommen.",
			want:  []string{"Die", "Lehrer*innen", "kommen", "."},
		},
		{
			name:  "slash as separator",
			input: "Das gilt und/oder eben nicht.",
			want:  []string{"Das", "gilt", "und", "/", "oder", "eben", "nicht", "."},
		},
		{
			name:  "xml entity",
			input: "Fisch &amp; Chips",
			want:  []string{"Fisch", "&amp;", "Chips"},
		},
		{
			name:  "inline markup",
			input: "Das ist <b>fett</b> gedruckt.",
			want:  []string{"Das", "ist", "<b>", "fett", "</b>", "gedruckt", "."},
		},
		{
			name:  "number compound",
			input: "Das Web2.0 lebt.",
			want:  []string{"Das", "Web2.0", "lebt", "."},
		},
		{
			name:  "whitespace is collapsed",
			input: "  Viel \t zu   viel Platz.  ",
			want:  []string{"Viel", "zu", "viel", "Platz", "."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenTexts(tok.TokenizeParagraph(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeParagraph(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeEnglish(t *testing.T) {
	tok, err := New("en", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "contracted negation",
			input: "This isn't funny.",
			want:  []string{"This", "is", "n't", "funny", "."},
		},
		{
			name:  "informal contraction",
			input: "We're gonna win.",
			want:  []string{"We", "'re", "gon", "na", "win", "."},
		},
		{
			name:  "multipart abbreviation stays one token",
			input: "The U.S.A. are big.",
			want:  []string{"The", "U.S.A.", "are", "big", "."},
		},
		{
			name:  "date stays one token",
			input: "It happened on 4/8/2024 apparently.",
			want:  []string{"It", "happened", "on", "4/8/2024", "apparently", "."},
		},
		{
			name:  "time with am pm",
			input: "See you at 6:30pm!",
			want:  []string{"See", "you", "at", "6:30", "pm", "!"},
		},
		{
			name:  "ordinal",
			input: "She came in 2nd place.",
			want:  []string{"She", "came", "in", "2nd", "place", "."},
		},
		{
			name:  "hyphenated word is split",
			input: "a highly-contrived example",
			want:  []string{"a", "highly", "-", "contrived", "example"},
		},
		{
			name:  "slash word",
			input: "w/o any problems",
			want:  []string{"w/o", "any", "problems"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenTexts(tok.TokenizeParagraph(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeParagraph(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenClasses(t *testing.T) {
	tok, err := New("de", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name  string
		input string
		text  string
		class token.Class
	}{
		{name: "abbreviation", input: "Das ist z.B. gut.", text: "z.B.", class: token.Abbreviation},
		{name: "url", input: "Siehe www.example.com hier.", text: "www.example.com", class: token.URL},
		{name: "email", input: "An info@example.com senden.", text: "info@example.com", class: token.Email},
		{name: "mention", input: "Frag @alice mal.", text: "@alice", class: token.Mention},
		{name: "hashtag", input: "Alles zu #webtok hier.", text: "#webtok", class: token.Hashtag},
		{name: "emoticon", input: "Na toll ;-)", text: ";-)", class: token.Emoticon},
		{name: "xml tag", input: "Das ist <em>wichtig</em> hier.", text: "<em>", class: token.XMLTag},
		{name: "xml entity", input: "Fisch &amp; Chips", text: "&amp;", class: token.XMLEntity},
		{name: "date part", input: "Am 13.07.2008 war es.", text: "2008", class: token.Date},
		{name: "time", input: "Um 6:30 Uhr.", text: "6:30", class: token.Time},
		{name: "ordinal", input: "Am 3. Mai.", text: "3.", class: token.Ordinal},
		{name: "number", input: "Es sind 1.999,95 Euro.", text: "1.999,95", class: token.Number},
		{name: "measurement", input: "Genau 20kg schwer.", text: "kg", class: token.Measurement},
		{name: "symbol", input: "Echt jetzt?!", text: "?!", class: token.Symbol},
		{name: "action word", input: "Er kommt *grins* vorbei.", text: "grins", class: token.ActionWord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tok.TokenizeParagraph(tt.input)
			for _, got := range tokens {
				if got.Text == tt.text {
					if got.Class != tt.class {
						t.Errorf("token %q has class %v, want %v", tt.text, got.Class, tt.class)
					}
					return
				}
			}
			t.Errorf("token %q not found in %v", tt.text, tokenTexts(tokens))
		})
	}
}

func TestSpaceAfter(t *testing.T) {
	tok, err := New("de", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tokens := tok.TokenizeParagraph("Echt jetzt?! Na gut.")
	byText := map[string]token.Token{}
	for _, tk := range tokens {
		byText[tk.Text] = tk
	}
	if byText["jetzt"].SpaceAfter {
		t.Error(`"jetzt" should not have a space before "?!"`)
	}
	if !byText["?!"].SpaceAfter {
		t.Error(`"?!" should have a trailing space`)
	}
	if !byText["Echt"].SpaceAfter {
		t.Error(`"Echt" should have a trailing space`)
	}
}

func TestSpaceEmoticonRepair(t *testing.T) {
	tok, err := New("de", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tokens := tok.TokenizeParagraph("Super : ) oder?")
	var fixed *token.Token
	for i := range tokens {
		if tokens[i].Text == ":)" {
			fixed = &tokens[i]
			break
		}
	}
	if fixed == nil {
		t.Fatalf("no repaired emoticon in %v", tokenTexts(tokens))
	}
	if fixed.Class != token.Emoticon {
		t.Errorf("class = %v, want %v", fixed.Class, token.Emoticon)
	}
	if fixed.OriginalSpelling != ": )" {
		t.Errorf("OriginalSpelling = %q, want %q", fixed.OriginalSpelling, ": )")
	}
}

func TestEmoji(t *testing.T) {
	tok, err := New("de", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  []string
		emoji string
	}{
		{
			name:  "face",
			input: "Hallo 😀 Welt",
			want:  []string{"Hallo", "😀", "Welt"},
			emoji: "😀",
		},
		{
			name:  "flag",
			input: "Wir sind 🇩🇪 Fans",
			want:  []string{"Wir", "sind", "🇩🇪", "Fans"},
			emoji: "🇩🇪",
		},
		{
			name:  "variation selector",
			input: "Tolles Wetter ☀️ heute",
			want:  []string{"Tolles", "Wetter", "☀️", "heute"},
			emoji: "☀️",
		},
		{
			name:  "glued to word",
			input: "Danke😀",
			want:  []string{"Danke", "😀"},
			emoji: "😀",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tok.TokenizeParagraph(tt.input)
			got := tokenTexts(tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("TokenizeParagraph(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for _, tk := range tokens {
				if tk.Text == tt.emoji && tk.Class != token.Emoji {
					t.Errorf("emoji %q has class %v, want %v", tk.Text, tk.Class, token.Emoji)
				}
			}
		})
	}
}

func TestCamelCaseSplitting(t *testing.T) {
	tests := []struct {
		name      string
		splitting bool
		input     string
		want      []string
	}{
		{
			name:      "disabled keeps token",
			splitting: false,
			input:     "Das ist soChauvi hier.",
			want:      []string{"Das", "ist", "soChauvi", "hier", "."},
		},
		{
			name:      "enabled splits at transition",
			splitting: true,
			input:     "Das ist soChauvi hier.",
			want:      []string{"Das", "ist", "so", "Chauvi", "hier", "."},
		},
		{
			name:      "exception token survives",
			splitting: true,
			input:     "Mein iPhone ist kaputt.",
			want:      []string{"Mein", "iPhone", "ist", "kaputt", "."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := New("de", tt.splitting)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got := tokenTexts(tok.TokenizeParagraph(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeParagraph(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReconstruction(t *testing.T) {
	tok, err := New("de", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	inputs := []string{
		"Das ist ein Test.",
		"Das ist z.B. ein Test.",
		"Echt jetzt?! Na gut.",
		"@alice kennt #webtok und www.example.com",
		"Am 13.07.2008 um 6:30 Uhr.",
	}
	for _, input := range inputs {
		tokens := tok.TokenizeParagraph(input)
		if got := reconstruct(tokens); got != input {
			t.Errorf("reconstruct(%q) = %q", input, got)
		}
	}
}

func TestLockedMarkupLeftAlone(t *testing.T) {
	tok, err := New("de", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts := token.NewStream(
		token.Token{Text: "<p class='x'>", Markup: true, Locked: true, SpaceAfter: true},
		token.Token{Text: "Hallo Welt!", SpaceAfter: true},
		token.Token{Text: "</p>", Markup: true, Locked: true, SpaceAfter: true},
	)
	tok.TokenizeStream(ts)
	got := tokenTexts(ts.Tokens())
	want := []string{"<p class='x'>", "Hallo", "Welt", "!", "</p>"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}
