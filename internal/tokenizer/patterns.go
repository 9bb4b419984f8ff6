package tokenizer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/cwerner/webtok/internal/abbrev"
)

// Normalization patterns that perform plain substitutions. These never need
// lookaround, so the stdlib engine is used for them.
var (
	spacesRE             = regexp.MustCompile(`\s+`)
	controlsRE           = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)
	strandedVariationRE  = regexp.MustCompile(` \x{FE0F}`)
	// soft hyphen, Arabic letter mark, zero-width and bidirectional format
	// characters, word joiner, BOM
	otherNastiesRE = regexp.MustCompile(`[\x{00AD}\x{061C}\x{200B}-\x{200F}\x{202A}-\x{202E}\x{2060}\x{2066}-\x{2069}\x{FEFF}]`)
)

// Western emoticons that escape the generic eyes-nose-mouth pattern.
var emoticonList = []string{
	"(-.-)", "(T_T)", "(♥_♥)", ")':", ")-:", "(-:", ")=", ")o:", ")x",
	":'C", ":/", ":<", ":C", ":[", "=(", "=)", "=D", "=P", ">:", `\:`,
	"]:", "x(", "^^", "o.O", `\O/`, `\m/`, ":;))", "_))", "*_*", "._.",
	":wink:", ">_<", "*<:-)", ":!:", ":;-))",
}

// patterns holds the compiled matcher cascade for one language profile.
// Matchers need lookbehind/lookahead and backreferences, so they are compiled
// with regexp2; all match indices are rune-based.
type patterns struct {
	xmlDeclaration *regexp2.Regexp
	tag            *regexp2.Regexp
	email          *regexp2.Regexp

	simpleURLWithBrackets *regexp2.Regexp
	simpleURL             *regexp2.Regexp
	doi                   *regexp2.Regexp
	doiWithSpace          *regexp2.Regexp
	urlWithoutProtocol    *regexp2.Regexp
	redditLinks           *regexp2.Regexp

	entity *regexp2.Regexp

	spaceEmoticon *regexp2.Regexp
	heartEmoticon *regexp2.Regexp
	emoticon      *regexp2.Regexp
	emojiWord     *regexp2.Regexp

	mention    *regexp2.Regexp
	hashtag    *regexp2.Regexp
	actionWord *regexp2.Regexp
	underline  *regexp2.Regexp

	plusAmpersandToken     *regexp2.Regexp
	plusAmpersandCandidate *regexp2.Regexp

	camelCaseToken     *regexp2.Regexp
	camelCaseCandidate *regexp2.Regexp
	inAndInnen         *regexp2.Regexp
	camelCase          *regexp2.Regexp
	genderStar         *regexp2.Regexp

	singleLetterEllipsis     *regexp2.Regexp
	andCetera                *regexp2.Regexp
	strAbbreviation          *regexp2.Regexp
	nrAbbreviation           *regexp2.Regexp
	singleTokenAbbreviation  *regexp2.Regexp
	singleLetterAbbreviation *regexp2.Regexp
	multipartAbbreviation    *regexp2.Regexp
	abbreviation             *regexp2.Regexp

	threePartDateYearFirst *regexp2.Regexp
	threePartDateDMY       *regexp2.Regexp
	threePartDateMDY       *regexp2.Regexp
	twoPartDate            *regexp2.Regexp
	timeOfDay              *regexp2.Regexp
	enTime                 *regexp2.Regexp
	enUSPhoneNumber        *regexp2.Regexp
	enNumericalIdentifier  *regexp2.Regexp
	enUSZipCode            *regexp2.Regexp
	ordinal                *regexp2.Regexp
	englishOrdinal         *regexp2.Regexp
	englishDecades         *regexp2.Regexp
	fraction               *regexp2.Regexp
	amount                 *regexp2.Regexp
	semester               *regexp2.Regexp
	measurement            *regexp2.Regexp
	numberCompound         *regexp2.Regexp
	number                 *regexp2.Regexp
	ipv4                   *regexp2.Regexp
	sectionNumber          *regexp2.Regexp

	questExclam        *regexp2.Regexp
	arrow              *regexp2.Regexp
	paren              *regexp2.Regexp
	deSlash            *regexp2.Regexp
	enSlashWords       *regexp2.Regexp
	letterApostrophe   *regexp2.Regexp
	enDMS              *regexp2.Regexp
	enLLREVE           *regexp2.Regexp
	enNot              *regexp2.Regexp
	enTwoPartContr     []*regexp2.Regexp
	enThreePartContr   []*regexp2.Regexp
	enNonbreakingPre   *regexp2.Regexp
	enNonbreakingSuf   *regexp2.Regexp
	enNonbreakingWords *regexp2.Regexp
	enHyphen           *regexp2.Regexp
	enQuotationMarks   *regexp2.Regexp
	enOtherPunctuation *regexp2.Regexp
	otherPunctuation   *regexp2.Regexp
	ellipsis           *regexp2.Regexp
	dotWithoutSpace    *regexp2.Regexp
	dot                *regexp2.Regexp
}

var (
	patternsMu     sync.Mutex
	patternsByLang = map[string]*patterns{}
)

// patternsFor returns the compiled cascade for the language, building it on
// first use. The result is immutable and shared; regexp2 matchers are safe
// for concurrent use.
func patternsFor(language string, table *abbrev.Table) *patterns {
	patternsMu.Lock()
	defer patternsMu.Unlock()
	if p, ok := patternsByLang[language]; ok {
		return p
	}
	p := compile(language, table)
	patternsByLang[language] = p
	return p
}

func compile(language string, table *abbrev.Table) *patterns {
	p := &patterns{}

	// tags and e-mail addresses may contain whitespace, so they are matched
	// before the whitespace split
	p.xmlDeclaration = regexp2.MustCompile(
		`<\?xml(?:\s+[_:A-Z][-.:\w]*\s*=\s*(?:"[^"]*"|'[^']*'))*\s*\?>`,
		regexp2.IgnoreCase)
	p.tag = regexp2.MustCompile(
		`<(?:([_:A-Z][-.:\w]*)(?:\s+[_:A-Z][-.:\w]*\s*=\s*(?:"[^"]*"|'[^']*'))*\s*/?|/([_:A-Z][-.:\w]*)\s*)>`,
		regexp2.IgnoreCase)
	// covers obfuscated spellings like "foo [at] bar [dot] com"
	p.email = regexp2.MustCompile(
		`\b[\w.%+-]+(?:@| \[at\] )[\w.-]+(?:\.| \[?dot\]? )\p{L}{2,}\b`,
		regexp2.None)

	p.simpleURLWithBrackets = regexp2.MustCompile(
		`\b(?:(?:https?|ftp|svn)://|(?:https?://)?www\.)\S+?\(\S*?\)\S*(?=$|['. "!?,;])`,
		regexp2.IgnoreCase)
	p.simpleURL = regexp2.MustCompile(
		`\b(?:(?:https?|ftp|svn)://|(?:https?://)?www\.)\S+[^'. "!?,;:)]`,
		regexp2.IgnoreCase)
	p.doi = regexp2.MustCompile(`\bdoi:10\.\d+/\S+`, regexp2.IgnoreCase)
	p.doiWithSpace = regexp2.MustCompile(`(?<=\bdoi: )10\.\d+/\S+`, regexp2.IgnoreCase)
	// also covers things like tagesschau.de-App
	p.urlWithoutProtocol = regexp2.MustCompile(
		`\b[\w./-]+\.(?:de|com|org|net|edu|info|gov|jpg|png|gif|log|txt|xlsx?|docx?|pptx?|pdf)(?:-\w+)?\b`,
		regexp2.IgnoreCase)
	p.redditLinks = regexp2.MustCompile(`(?<!\w)/?[rlu](?:/\w+)+/?(?!\w)`, regexp2.IgnoreCase)

	p.entity = regexp2.MustCompile(`&(?:quot|amp|apos|lt|gt|#\d+|#x[0-9a-f]+);`, regexp2.IgnoreCase)

	p.spaceEmoticon = regexp2.MustCompile(`([:;])[ ]+([()])`, regexp2.None)
	// ^3 is an emoticon unless preceded by a number
	p.heartEmoticon = regexp2.MustCompile(`(?:^|^\D|(?<=\D[ ])|(?<=.[^\d ]))\^3`, regexp2.None)
	p.emoticon = regexp2.MustCompile(
		`(?:(?:[:;]|(?<!\d)8)[-'oO]?(?:\)+|\(+|[*]|([DPp])\1*(?!\w)))`+
			`|(?:\b[Xx]D+\b)|(?:\b(?:D'?:|oO)\b)|`+
			alternation(emoticonList),
		regexp2.None)
	// textual representations of emoji
	p.emojiWord = regexp2.MustCompile(`\bemojiQ\p{L}{3,}\b`, regexp2.None)

	p.mention = regexp2.MustCompile(`[@]\w+(?!\w)`, regexp2.None)
	p.hashtag = regexp2.MustCompile(`(?<!\w)[#]\w+(?!\w)`, regexp2.None)
	p.actionWord = regexp2.MustCompile(`(?<!\w)(?<a_open>[*+])(?<b_middle>[^\s*]+)(?<c_close>[*])(?!\w)`, regexp2.None)
	// a pair of underscores can be used to "underline" some text
	p.underline = regexp2.MustCompile(`(?<!\w)(?<a_open>_)(?<b_text>\w[^_]+\w)(?<c_close>_)(?!\w)`, regexp2.None)

	p.plusAmpersandToken = regexp2.MustCompile(
		`(?<!\w)(?:`+alternation(table.PlusAmpersandTokens())+`)(?!\w)`,
		regexp2.IgnoreCase)
	p.plusAmpersandCandidate = regexp2.MustCompile(`\b\w+[&+]\w+\b`, regexp2.None)

	p.camelCaseToken = regexp2.MustCompile(
		`\b(?:`+alternation(table.CamelCaseTokens())+`|:Mac\p{Lu}\p{Ll}*)\b`,
		regexp2.None)
	p.camelCaseCandidate = regexp2.MustCompile(`\b\w*\p{Ll}\p{Lu}\w*\b`, regexp2.None)
	p.inAndInnen = regexp2.MustCompile(`\b\p{L}+\p{Ll}In(?:nen)?\p{Ll}*\b`, regexp2.None)
	p.camelCase = regexp2.MustCompile(`(?<=\p{Ll}{2})\p{Lu}(?!\p{Lu}|\b)`, regexp2.None)
	p.genderStar = regexp2.MustCompile(`\b\p{L}+\*in(?:nen)?\p{Ll}*\b`, regexp2.IgnoreCase)

	p.singleLetterEllipsis = regexp2.MustCompile(`(?<![\w.])(?<a_letter>\p{L})(?<b_ellipsis>\.{3})(?!\.)`, regexp2.None)
	p.andCetera = regexp2.MustCompile(`(?<![\w.&])&c\.(?!\p{L}{1,3}\.)`, regexp2.None)
	p.strAbbreviation = regexp2.MustCompile(`(?<![\w.])([\p{L}-]+-Str\.)(?!\p{L})`, regexp2.IgnoreCase)
	p.nrAbbreviation = regexp2.MustCompile(`(?<![\w.])(\w+\.-?Nr\.)(?!\p{L}{1,3}\.)`, regexp2.IgnoreCase)
	p.singleTokenAbbreviation = regexp2.MustCompile(
		`(?<![\w.])(?:`+alternation(table.SingleTokenAbbreviations())+`)(?!\p{L}{1,3}\.)`,
		regexp2.IgnoreCase)
	p.singleLetterAbbreviation = regexp2.MustCompile(`(?<![\w.])\p{L}\.(?!\p{L}{1,3}\.)`, regexp2.None)
	p.multipartAbbreviation = regexp2.MustCompile(`^(?:\p{L}+\.){2,}$`, regexp2.None)
	p.abbreviation = regexp2.MustCompile(
		`(?<![\p{L}.])(?:(?:(?:\p{L}\.){2,})|`+alternation(table.Abbreviations())+`)+(?!\p{L}{1,3}\.)`,
		regexp2.IgnoreCase)

	p.threePartDateYearFirst = regexp2.MustCompile(
		`(?<![\d.])(?<a_year>\d{4})(?<b_month>(?<sep>[/-])\d{1,2})(?<c_day>\k<sep>\d{1,2})(?![\d.])`,
		regexp2.None)
	p.threePartDateDMY = regexp2.MustCompile(
		`(?<![\d.])(?<a_day>(?:0?[1-9]|1[0-9]|2[0-9]|3[01])(?<sep>[./-]))(?<b_month>(?:0?[1-9]|1[0-2])\k<sep>)(?<c_year>(?:\d\d){1,2})(?![\d.])`,
		regexp2.None)
	p.threePartDateMDY = regexp2.MustCompile(
		`(?<![\d.])(?<a_month>(?:0?[1-9]|1[0-2])(?<sep>[./-]))(?<b_day>(?:0?[1-9]|1[0-9]|2[0-9]|3[01])\k<sep>)(?<c_year>(?:\d\d){1,2})(?![\d.])`,
		regexp2.None)
	p.twoPartDate = regexp2.MustCompile(
		`(?<![\d.])(?<a_first>\d{1,2}(?<sep>[./-]))(?<b_second>\d{1,2}\k<sep>)(?![\d.])`,
		regexp2.None)
	p.timeOfDay = regexp2.MustCompile(`(?<!\w)\d{1,2}(?:(?::\d{2}){1,2}){1,2}(?![\d:])`, regexp2.None)
	p.enTime = regexp2.MustCompile(
		`(?<!\w)(?<a_time>\d{1,2}(?:[.:]\d{2}){0,2}) ?(?<b_ampm>[ap]m\b|[ap]\.m\.(?!\w))`,
		regexp2.IgnoreCase)
	p.enUSPhoneNumber = regexp2.MustCompile(`(?<![\d-])(?:[2-9]\d{2}[/-])?\d{3}-\d{4}(?![\d-])`, regexp2.None)
	p.enNumericalIdentifier = regexp2.MustCompile(
		`(?<![\d-])\d+-(?:\d+-)+\d+(?![\d-])|(?<![\d/])\d+/(?:\d+/)+\d+(?![\d/])`,
		regexp2.None)
	p.enUSZipCode = regexp2.MustCompile(`(?<![\d-])\d{5}-\d{4}(?![\d-])`, regexp2.None)
	p.ordinal = regexp2.MustCompile(`(?<![\w.])(?:\d{1,3}|\d{5,}|[3-9]\d{3})\.(?!\d)`, regexp2.None)
	p.englishOrdinal = regexp2.MustCompile(`\b(?:\d+(?:,\d+)*)?(?:1st|2nd|3rd|\dth)\b`, regexp2.None)
	p.englishDecades = regexp2.MustCompile(`\b(?:[12]\d)?\d0['’]?s\b`, regexp2.None)
	p.fraction = regexp2.MustCompile(`(?<!\w)\d+/\d+(?![\d/])`, regexp2.None)
	p.amount = regexp2.MustCompile(`(?<!\w)(?:\d+[\d,.]*-)(?!\w)`, regexp2.None)
	p.semester = regexp2.MustCompile(`(?<!\w)(?<a_term>[WS]S|SoSe|WiSe)(?<b_year>\d\d(?:/\d\d)?)(?!\w)`, regexp2.IgnoreCase)
	p.measurement = regexp2.MustCompile(
		`(?<!\w)(?<a_amount>[−+-]?\d*[,.]?\d+) ?(?<b_unit>(?:mm|cm|dm|m|km)(?:\^?[23])?|bit|cent|eur|f|ft|g|ghz|h|hz|kg|l|lb|min|ml|qm|s|sek)(?!\w)`,
		regexp2.IgnoreCase)
	// also Web2.0
	p.numberCompound = regexp2.MustCompile(
		`(?<!\w)(?:\d+-?[\p{L}@][\p{L}@-]*|[\p{L}@][\p{L}@-]*-?\d+(?:\.\d)?)(?!\w)`,
		regexp2.None)
	p.number = regexp2.MustCompile(
		`(?<!\w|\d[.,]?)(?:[−+-]?(?:\d*[.,])?\d+(?:[eE][−+-]?\d+)?`+
			`|\d{1,3}(?:[.]\d{3})+(?:,\d+)?`+ // dot for thousands, comma for decimals: 1.999,95
			`|\d{1,3}(?:,\d{3})+(?:[.]\d+)?`+ // comma for thousands, dot for decimals: 1,999.95
			`)(?![.,]?\d)`,
		regexp2.None)
	p.ipv4 = regexp2.MustCompile(`(?<!\w|\d[.,]?)(?:\d{1,3}[.]){3}\d{1,3}(?![.,]?\d)`, regexp2.None)
	p.sectionNumber = regexp2.MustCompile(`(?<!\w|\d[.,]?)(?:\d+[.])+\d+[.]?(?![.,]?\d)`, regexp2.None)

	p.questExclam = regexp2.MustCompile(`[!?]+`, regexp2.None)
	p.arrow = regexp2.MustCompile("-+>|<-+|[←-⇿]", regexp2.None)
	p.paren = regexp2.MustCompile(
		`(?:(?<!\w)[\[{(](?=\w))|(?:(?<=\w)[\]})](?!\w))|(?:^[\]})](?=\w))|(?:(?<=\w-)[)](?=\w))`,
		regexp2.None)
	p.deSlash = regexp2.MustCompile(`(/+)(?!in(?:nen)?|en)`, regexp2.None)
	// w/o, w/out, b/c, ...
	p.enSlashWords = regexp2.MustCompile(`\b(?:w/o|w/out|b/t|l/c|b/c|d/c|u/s)\b|\bw/(?!\w)`, regexp2.IgnoreCase)
	// L'Enfer, d'accord, O'Connor
	p.letterApostrophe = regexp2.MustCompile(`\b([dlo]['’]\p{L}+)\b`, regexp2.IgnoreCase)
	p.enDMS = regexp2.MustCompile(`(?<=\w)(['’][dms])\b`, regexp2.IgnoreCase)
	p.enLLREVE = regexp2.MustCompile(`(?<=\w)(['’](?:ll|re|ve))\b`, regexp2.IgnoreCase)
	p.enNot = regexp2.MustCompile(`(?<=\w)(n['’]t)\b`, regexp2.IgnoreCase)
	for _, contr := range []string{
		`\b(?<p1>a)(?<p2>lot)\b`, `\b(?<p1>gon)(?<p2>na)\b`, `\b(?<p1>got)(?<p2>ta)\b`,
		`\b(?<p1>lem)(?<p2>me)\b`, `\b(?<p1>out)(?<p2>ta)\b`, `\b(?<p1>wan)(?<p2>na)\b`,
		`\b(?<p1>c'm)(?<p2>on)\b`, `\b(?<p1>more)(?<p2>['’]n)\b`, `\b(?<p1>d['’])(?<p2>ye)\b`,
		`(?<!\w)(?<p1>['’]t)(?<p2>is)\b`, `(?<!\w)(?<p1>['’]t)(?<p2>was)\b`,
		`\b(?<p1>there)(?<p2>s)\b`, `\b(?<p1>i)(?<p2>m)\b`, `\b(?<p1>you)(?<p2>re)\b`,
		`\b(?<p1>he)(?<p2>s)\b`, `\b(?<p1>she)(?<p2>s)\b`, `\b(?<p1>ai)(?<p2>nt)\b`,
		`\b(?<p1>are)(?<p2>nt)\b`, `\b(?<p1>is)(?<p2>nt)\b`, `\b(?<p1>do)(?<p2>nt)\b`,
		`\b(?<p1>does)(?<p2>nt)\b`, `\b(?<p1>did)(?<p2>nt)\b`, `\b(?<p1>i)(?<p2>ve)\b`,
		`\b(?<p1>you)(?<p2>ve)\b`, `\b(?<p1>they)(?<p2>ve)\b`, `\b(?<p1>have)(?<p2>nt)\b`,
		`\b(?<p1>has)(?<p2>nt)\b`, `\b(?<p1>can)(?<p2>not)\b`, `\b(?<p1>ca)(?<p2>nt)\b`,
		`\b(?<p1>could)(?<p2>nt)\b`, `\b(?<p1>wo)(?<p2>nt)\b`, `\b(?<p1>would)(?<p2>nt)\b`,
		`\b(?<p1>you)(?<p2>ll)\b`, `\b(?<p1>let)(?<p2>s)\b`,
	} {
		p.enTwoPartContr = append(p.enTwoPartContr, regexp2.MustCompile(contr, regexp2.IgnoreCase))
	}
	for _, contr := range []string{
		`\b(?<p1>du)(?<p2>n)(?<p3>no)\b`, `\b(?<p1>wha)(?<p2>dd)(?<p3>ya)\b`,
		`\b(?<p1>wha)(?<p2>t)(?<p3>cha)\b`, `\b(?<p1>i)(?<p2>'m)(?<p3>a)\b`,
	} {
		p.enThreePartContr = append(p.enThreePartContr, regexp2.MustCompile(contr, regexp2.IgnoreCase))
	}
	if language == "en" {
		p.enNonbreakingPre = regexp2.MustCompile(
			`(?<![\w-])(?:`+alternation(table.NonbreakingPrefixes())+`)-[\w-]+`,
			regexp2.IgnoreCase)
		p.enNonbreakingSuf = regexp2.MustCompile(
			`\b[\w-]+-(?:`+alternation(table.NonbreakingSuffixes())+`)(?![\w-])`,
			regexp2.IgnoreCase)
		p.enNonbreakingWords = regexp2.MustCompile(
			`\b(?:`+alternation(table.NonbreakingWords())+`)\b`,
			regexp2.IgnoreCase)
	}
	p.enHyphen = regexp2.MustCompile(`(?<=\w)-+(?=\w)`, regexp2.None)
	p.enQuotationMarks = regexp2.MustCompile(`[„“”‚‘’"»«›‹]`, regexp2.None)
	p.enOtherPunctuation = regexp2.MustCompile(`[#<>%‰€$£₤¥°@~*,;:+×÷±≤≥=&/–—-]+`, regexp2.None)
	p.otherPunctuation = regexp2.MustCompile(`[#<>%‰€$£₤¥°@~*„“”‚‘"»«›‹,;:+×÷±≤≥=&–—]`, regexp2.None)
	p.ellipsis = regexp2.MustCompile(`\.{2,}|…+(?:\.{2,})?`, regexp2.None)
	p.dotWithoutSpace = regexp2.MustCompile(`(?<=\p{Ll}{2})\.(?=\p{Lu}\p{Ll}{2})`, regexp2.None)
	p.dot = regexp2.MustCompile(`\.`, regexp2.None)

	return p
}

// alternation escapes the entries and joins them into a regex alternation.
// The entries are expected sorted longest first so the alternation prefers
// the longest match.
func alternation(entries []string) string {
	escaped := make([]string, len(entries))
	for i, e := range entries {
		escaped[i] = regexp.QuoteMeta(e)
	}
	return strings.Join(escaped, "|")
}
