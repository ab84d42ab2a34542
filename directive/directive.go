// Package directive implements in-source directive comment parsing and
// the resulting suppression lookup (§4.8). A directive is a specially
// formatted comment that disables or re-enables rule(s) for a node, a
// subtree, or the whole file.
//
// Grounded on
// original_source/crates/rslint_core/src/directives/parser.rs's
// Instruction enum (re-expressed here as a small Go interface hierarchy)
// and on spec.md §4.8's grammar-table driver description; target-node
// determination follows the sink's actual leading-trivia attachment
// mechanics (cstree/sink.go): a directive comment attaches as leading
// trivia of the node it immediately precedes, so that node is its
// default target.
package directive

import (
	"strings"

	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// Prefix is the comment marker every recognized directive starts with,
// after stripping the `//` or `/*...*/` comment delimiters and leading
// whitespace.
const Prefix = "rslint-"

// kind distinguishes the four built-in commands (§4.8 "built-in command
// table").
type kind int

const (
	kindIgnore kind = iota
	kindIgnoreUntilEOF
	kindAllow
)

// instruction is one parsed directive comment.
type instruction struct {
	kind   kind
	rules  []string // empty means "all rules"
	target *cstree.Node
	fileID int
	commentRange textedit.Range
}

// Table is the suppression index built by Parse: it implements
// rules.Suppressor without importing package rules (which would create
// an import cycle — rules.Suppressor is declared independently of this
// package for exactly that reason).
type Table struct {
	// byNode maps a target node to the instructions anchored on it.
	byNode map[*cstree.Node][]instruction
	// fileWide holds instructions with no specific target (ignore/allow at
	// file scope, and `ignore until eof`).
	fileWide []instruction
}

// Suppressed reports whether rule should not fire on n, per §4.8 "Effect
// on walk": nearest-enclosing-target wins, with an explicit `allow`
// unconditionally beating an `ignore` at the same or a less specific
// scope, and an `allow` always beating a file-wide `ignore`/`ignore until
// eof` too (mirrors the config-level "allowed always wins" decision in
// DESIGN.md Open Question 2).
func (t *Table) Suppressed(n *cstree.Node, rule string) bool {
	if t == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if insts, ok := t.byNode[cur]; ok {
			if allowed, ignored, decided := decide(insts, rule); decided {
				return ignored && !allowed
			}
		}
	}
	if allowed, ignored, decided := decide(t.fileWide, rule); decided {
		return ignored && !allowed
	}
	return false
}

// decide scans insts for an allow or ignore covering rule, allow
// winning. decided is false if insts say nothing about rule.
func decide(insts []instruction, rule string) (allowed, ignored, decided bool) {
	for _, in := range insts {
		covers := len(in.rules) == 0 || containsString(in.rules, rule)
		if !covers {
			continue
		}
		switch in.kind {
		case kindAllow:
			allowed, decided = true, true
		case kindIgnore, kindIgnoreUntilEOF:
			ignored, decided = true, true
		}
	}
	return allowed, ignored, decided
}

func containsString(hay []string, needle string) bool {
	for _, h := range hay {
		if h == needle {
			return true
		}
	}
	return false
}

// Parse scans root for directive comments and builds the suppression
// table for fileID, reporting a diagnostic for any comment that starts
// with Prefix but fails to parse as one of the four known commands
// (unknown command, unknown rule name, or malformed argument list, per
// §7). knownRules is used only to fuzzy-suggest a correction for an
// unrecognized rule name; it is not required to be exhaustive.
func Parse(root *cstree.Node, src string, fileID int, knownRules []string) (*Table, []diagnostic.Diagnostic) {
	t := &Table{byNode: map[*cstree.Node][]instruction{}}
	var diags []diagnostic.Diagnostic

	root.DescendantsPreorder(func(n *cstree.Node) {
		for _, e := range n.ChildrenWithTokens() {
			if e.Token == nil {
				continue
			}
			if e.Token.Kind() != token.LineComment && e.Token.Kind() != token.BlockComment {
				continue
			}
			body, ok := directiveBody(e.Token.Text(src))
			if !ok {
				continue
			}
			// Leading trivia (cstree/sink.go's consumeLeadingTrivia)
			// attaches a comment as a child of the node it immediately
			// precedes, so n IS already "the next node" — ignore-next
			// needs no separate sibling lookup, it targets n exactly like
			// a bare `ignore` with no rule list.
			in, d := parseOne(body, e.Token, n, fileID, knownRules)
			if d != nil {
				diags = append(diags, *d)
				continue
			}
			switch {
			case in.kind == kindIgnoreUntilEOF, in.target == nil || in.target == root:
				t.fileWide = append(t.fileWide, in)
			default:
				t.byNode[in.target] = append(t.byNode[in.target], in)
			}
		}
	})
	return t, diags
}

// directiveBody strips comment delimiters and Prefix, returning the
// remainder (command + args) if the comment is a directive at all.
func directiveBody(commentText string) (string, bool) {
	text := commentText
	switch {
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
	default:
		return "", false
	}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, Prefix) {
		return "", false
	}
	return strings.TrimSpace(text[len(Prefix):]), true
}

// parseOne parses a directive body (post-prefix) into an instruction
// anchored on defaultTarget, via a small grammar table rather than ad
// hoc string matching, matching spec.md's "grammar-table driver"
// description.
func parseOne(body string, comment *cstree.Token, defaultTarget *cstree.Node, fileID int, knownRules []string) (instruction, *diagnostic.Diagnostic) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return instruction{}, unknownCommand(comment, fileID, body)
	}
	cmdRange := textedit.Range{Start: comment.Offset(), End: comment.EndOffset()}

	switch fields[0] {
	case "ignore-next":
		return instruction{kind: kindIgnore, target: defaultTarget, fileID: fileID, commentRange: cmdRange}, nil
	case "ignore":
		rest := strings.TrimSpace(strings.TrimPrefix(body, "ignore"))
		if rest == "until eof" {
			return instruction{kind: kindIgnoreUntilEOF, fileID: fileID, commentRange: cmdRange}, nil
		}
		if rest == "" {
			return instruction{kind: kindIgnore, target: defaultTarget, fileID: fileID, commentRange: cmdRange}, nil
		}
		rules, d := parseRuleList(rest, comment, fileID, knownRules)
		if d != nil {
			return instruction{}, d
		}
		return instruction{kind: kindIgnore, rules: rules, target: defaultTarget, fileID: fileID, commentRange: cmdRange}, nil
	case "allow":
		rest := strings.TrimSpace(strings.TrimPrefix(body, "allow"))
		if rest == "" {
			return instruction{}, malformed(comment, fileID, "allow requires at least one rule name")
		}
		rules, d := parseRuleList(rest, comment, fileID, knownRules)
		if d != nil {
			return instruction{}, d
		}
		return instruction{kind: kindAllow, rules: rules, target: defaultTarget, fileID: fileID, commentRange: cmdRange}, nil
	default:
		return instruction{}, unknownCommand(comment, fileID, fields[0])
	}
}

func parseRuleList(rest string, comment *cstree.Token, fileID int, knownRules []string) ([]string, *diagnostic.Diagnostic) {
	var names []string
	for _, part := range strings.Split(rest, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, malformed(comment, fileID, "empty rule name in list")
		}
		if len(knownRules) > 0 && !containsString(knownRules, name) {
			d := diagnostic.Errorf("directive-unknown-rule", "unknown rule "+quote(name))
			d.Primary(fileID, textedit.Range{Start: comment.Offset(), End: comment.EndOffset()}, "referenced here")
			if suggestion := closestMatch(name, knownRules); suggestion != "" {
				d.FooterHelpText("did you mean " + quote(suggestion) + "?")
			}
			return nil, d
		}
		names = append(names, name)
	}
	return names, nil
}

func unknownCommand(comment *cstree.Token, fileID int, got string) *diagnostic.Diagnostic {
	d := diagnostic.Errorf("directive-unknown-command", "unknown directive command "+quote(got))
	d.Primary(fileID, textedit.Range{Start: comment.Offset(), End: comment.EndOffset()}, "not one of ignore, ignore-next, allow")
	return d
}

func malformed(comment *cstree.Token, fileID int, why string) *diagnostic.Diagnostic {
	d := diagnostic.Errorf("directive-malformed", "malformed directive: "+why)
	d.Primary(fileID, textedit.Range{Start: comment.Offset(), End: comment.EndOffset()}, why)
	return d
}

func quote(s string) string { return "\"" + s + "\"" }

// closestMatch returns the knownRules entry with the smallest Levenshtein
// distance to name, or "" if none is within a reasonable edit distance
// (half the candidate's length, floor 2).
func closestMatch(name string, knownRules []string) string {
	best, bestDist := "", -1
	for _, cand := range knownRules {
		d := levenshtein(name, cand)
		limit := len(cand) / 2
		if limit < 2 {
			limit = 2
		}
		if d > limit {
			continue
		}
		if bestDist == -1 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = min3(del, ins, sub)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

