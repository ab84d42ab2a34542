package errors

import (
	"strings"

	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// irregularWhitespace lists, as explicit code points, the Unicode
// whitespace the lexer accepts as Whitespace/LineBreak trivia but that
// is visually indistinguishable from an ordinary space or newline in
// most editors, making it a likely copy-paste accident (e.g. a stray
// U+00A0 non-breaking space inside indentation). The ordinary ' ' and
// '\t' are deliberately not flagged; '\n'/'\r' are LineBreak's normal
// spellings and excluded too. Grounded on
// original_source/crates/rslint_core/src/groups/errors/no_irregular_whitespace.rs.
var irregularWhitespace = string([]rune{
	0x000B, // vertical tab
	0x000C, // form feed
	0x00A0, // no-break space
	0x0085, // next line
	0x1680, // ogham space mark
	0x180E, // mongolian vowel separator
	0x2000, 0x2001, 0x2002, 0x2003, 0x2004,
	0x2005, 0x2006, 0x2007, 0x2008, 0x2009, 0x200A,
	0x2028, // line separator
	0x2029, // paragraph separator
	0x202F, // narrow no-break space
	0x205F, // medium mathematical space
	0x3000, // ideographic space
	0xFEFF, // zero width no-break space / BOM
})

// NoIrregularWhitespace flags whitespace trivia containing any code
// point from irregularWhitespace. This rule runs as a TokenRule
// specifically so it sees trivia tokens, which NodeRule dispatch never
// visits.
type NoIrregularWhitespace struct{}

func (NoIrregularWhitespace) Name() string  { return "no-irregular-whitespace" }
func (NoIrregularWhitespace) Group() string { return "errors" }

func (NoIrregularWhitespace) CheckToken(t *cstree.Token, ctx *rules.Context) {
	if t.Kind() != token.Whitespace && t.Kind() != token.LineBreak {
		return
	}
	text := t.Text(ctx.Src)
	if !strings.ContainsAny(text, irregularWhitespace) {
		return
	}
	d := diagnostic.Errorf("no-irregular-whitespace", "irregular whitespace not allowed")
	d.Primary(ctx.FileID, textedit.Range{Start: t.Offset(), End: t.EndOffset()}, "replace with a regular space or newline")
	ctx.Report(*d)
}
