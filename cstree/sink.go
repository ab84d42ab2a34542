package cstree

import (
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/event"
	"github.com/rslint/rslint-sub006/lexer"
	"github.com/rslint/rslint-sub006/token"
)

// Source provides the raw token list and the text needed to recover
// token spellings during tree construction.
type Source struct {
	Text   string
	Tokens []lexer.Tok
}

// frame is one entry of the sink's open-node stack.
type frame struct {
	kind     token.Kind
	children []GreenChild
}

// Sink consumes a balanced event stream plus the raw (trivia-inclusive)
// token list in lockstep and produces a green tree (§4.4). Trivia
// immediately before a Token event attaches inside the innermost node open
// at that point, so a comment between two statements becomes leading
// trivia of the following node (DESIGN.md, Open Question decision 1).
// Trivia is not attached as trailing trivia of a node that has just
// finished; the one exception is trivia after the last token, which
// attaches inside the root.
type Sink struct {
	src      Source
	pos      int // index into src.Tokens
	offset   int // byte offset of src.Tokens[pos]
	stack    []frame
	interner *Interner
	diags    []diagnostic.Diagnostic
	lossy    bool
}

// NewSink creates a sink over src using interner to dedupe green values.
// A nil interner disables sharing (every node/token is freshly allocated).
func NewSink(src Source, interner *Interner) *Sink {
	return &Sink{src: src, interner: interner}
}

// Option configures a single Run call.
type Option func(*Sink)

// Lossy selects the lossy sink variant named in spec.md §4.4: trivia
// tokens are discarded rather than attached.
func Lossy(lossy bool) Option {
	return func(s *Sink) { s.lossy = lossy }
}

// Run consumes events and returns the finished root green node plus any
// diagnostics attached to Error events. evs must be balanced (§3
// invariant): every Start has a matching Finish.
//
// Resolving forward-parent links requires visiting Start events out of
// their emission order: a Precede() call opens a new Start *after* the
// node it wraps has already been completed, so by the time the sink
// reaches that later Start, the wrapped node's own Start has already
// been (incorrectly) opened as a direct child of whatever was open at
// that point. The fix, grounded on the chain-walking algorithm used by
// rust-analyzer's rowan tree builder (referenced in
// original_source/crates/rslint_parser, which vendors rowan): when a
// Start event's forward-parent link is present, walk the chain of
// forward parents before opening anything, collecting each kind in
// inner-to-outer order and then opening them outermost first,
// tombstoning each visited Start so the main loop skips it when it later
// reaches that index directly.
func (s *Sink) Run(evs []event.Event, opts ...Option) (*GreenNode, []diagnostic.Diagnostic) {
	for _, opt := range opts {
		opt(s)
	}

	work := make([]event.Event, len(evs))
	copy(work, evs)

	s.push(token.ERROR_NODE) // synthetic outer frame, unwrapped at the end
	for i := range work {
		ev := work[i]
		switch ev.Tag {
		case event.TagStart:
			if ev.Kind == event.Tombstone && ev.ForwardParent < 0 {
				continue // already opened via an earlier forward-parent chain
			}
			var chain []token.Kind
			chain = append(chain, ev.Kind)
			idx := ev.ForwardParent
			for idx >= 0 {
				next := work[idx]
				if next.Kind != event.Tombstone {
					chain = append(chain, next.Kind)
				}
				consumed := next.ForwardParent
				work[idx].Kind = event.Tombstone
				work[idx].ForwardParent = -1
				idx = consumed
			}
			for j := len(chain) - 1; j >= 0; j-- {
				s.push(chain[j])
			}
		case event.TagFinish:
			if len(s.stack) == 2 {
				// About to close the real root (only the synthetic outer
				// frame will remain): absorb any trivia up to EOF into it
				// now, so end-of-file whitespace/comments land inside the
				// root rather than stranded outside it.
				s.consumeTrailingTrivia()
			}
			s.pop()
		case event.TagToken:
			s.consumeLeadingTrivia()
			s.bumpToken(ev.TokenKind, ev.Length)
		case event.TagError:
			s.diags = append(s.diags, ev.Diagnostic)
		}
	}
	s.consumeTrailingTrivia() // fallback for a degenerate/empty event stream
	root := s.pop()
	diags := s.diags
	// Unwrap the synthetic outer frame: it has exactly one child, the
	// real root (SCRIPT or MODULE), unless the input produced none.
	if len(root.Children()) == 1 && root.Children()[0].Node != nil {
		return root.Children()[0].Node, diags
	}
	return root, diags
}

func (s *Sink) push(kind token.Kind) {
	s.stack = append(s.stack, frame{kind: kind})
}

func (s *Sink) pop() *GreenNode {
	n := len(s.stack) - 1
	f := s.stack[n]
	s.stack = s.stack[:n]
	node := s.makeNode(f.kind, f.children)
	if len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		top.children = append(top.children, GreenChild{Node: node})
	}
	return node
}

func (s *Sink) makeNode(kind token.Kind, children []GreenChild) *GreenNode {
	if s.interner != nil {
		return s.interner.Node(kind, children)
	}
	total := 0
	for _, c := range children {
		total += c.Length()
	}
	return &GreenNode{kind: kind, children: children, length: total}
}

func (s *Sink) makeToken(kind token.Kind, text string) *GreenToken {
	if s.interner != nil {
		return s.interner.Token(kind, text)
	}
	return &GreenToken{kind: kind, length: len(text), text: text}
}

// consumeLeadingTrivia attaches every raw trivia token preceding the next
// non-trivia token into the currently innermost open node.
func (s *Sink) consumeLeadingTrivia() {
	for s.pos < len(s.src.Tokens) && s.src.Tokens[s.pos].Kind.IsTrivia() {
		s.attachRaw(s.src.Tokens[s.pos])
	}
}

// consumeTrailingTrivia attaches any trivia left after the final Token
// event (e.g. a trailing comment at end of file) to the outermost frame.
func (s *Sink) consumeTrailingTrivia() {
	for s.pos < len(s.src.Tokens) && s.src.Tokens[s.pos].Kind != token.EOF {
		s.attachRaw(s.src.Tokens[s.pos])
	}
}

func (s *Sink) attachRaw(t lexer.Tok) {
	text := s.src.Text[s.offset : s.offset+t.Length]
	s.offset += t.Length
	s.pos++
	if s.lossy {
		return
	}
	top := &s.stack[len(s.stack)-1]
	top.children = append(top.children, GreenChild{Token: s.makeToken(t.Kind, text)})
}

// bumpToken consumes the next non-trivia raw token and attaches it. The
// parser and the raw lexer stream are kept in lockstep by construction:
// every TagToken event corresponds to the next unconsumed, trivia-filtered
// raw token (§3 invariant).
func (s *Sink) bumpToken(kind token.Kind, length int) {
	text := s.src.Text[s.offset : s.offset+length]
	s.offset += length
	s.pos++
	top := &s.stack[len(s.stack)-1]
	top.children = append(top.children, GreenChild{Token: s.makeToken(kind, text)})
}
