// Package event defines the linear instruction stream that flows from the
// parser to the tree sink (§3, §4.3, §9). The parser never commits to a
// tree shape directly; it emits Start/Finish/Token/Error events into a
// contiguous buffer, which lets a later production retroactively wrap an
// already-completed node in a new parent (a "precede") by patching a
// forward-parent offset instead of re-shuffling already-emitted events.
//
// New relative to the teacher: robfig/soy's parser builds *ast.Node values
// directly as it recurses (see parse/parse.go's newX constructors) and has
// no event IR. This package is grounded directly on spec.md §3/§9.
package event

import (
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/token"
)

// Kind is the same unified token/node kind enumeration used throughout the
// toolchain (token.Kind).
type Kind = token.Kind

// Tombstone is the placeholder kind a Start event carries until it is
// completed or abandoned.
const Tombstone Kind = token.Invalid

// Tag distinguishes the four event variants.
type Tag uint8

const (
	TagStart Tag = iota
	TagFinish
	TagToken
	TagError
)

// Event is one of: Start(kind, optional forward-parent link), Finish,
// Token(kind, length), Error(diagnostic).
type Event struct {
	Tag Tag

	// Start / Finish
	Kind Kind

	// Start: index of a later Start event that this one should be
	// reparented under once the sink builds the tree (a "precede"); -1 if
	// none. Resolved at tree-build time by opening the referenced Start's
	// node before this one, so this node becomes its child (§4.4).
	ForwardParent int

	// Token
	TokenKind Kind
	Length    int

	// Error
	Diagnostic diagnostic.Diagnostic
}

// Marker is a handle the parser uses to open a node span in the event
// stream.
type Marker struct {
	// Pos is the index of this marker's Start event in the event buffer.
	Pos int
}

// CompletedMarker records the index of a now-closed Start event so later
// code can "precede" it — wrap it in a new parent without touching any
// event between its Start and the new one.
type CompletedMarker struct {
	Pos  int
	Kind Kind
}

// Buffer is the contiguous event buffer the parser appends to.
type Buffer struct {
	events []Event
}

// NewBuffer creates an empty event buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Start opens a Start(Tombstone) event and returns a marker over it.
func (b *Buffer) Start() Marker {
	pos := len(b.events)
	b.events = append(b.events, Event{Tag: TagStart, Kind: Tombstone, ForwardParent: -1})
	return Marker{Pos: pos}
}

// Complete rewrites the marker's Start to carry kind and emits a matching
// Finish, returning a CompletedMarker.
func (b *Buffer) Complete(m Marker, kind Kind) CompletedMarker {
	b.events[m.Pos].Kind = kind
	b.events = append(b.events, Event{Tag: TagFinish})
	return CompletedMarker{Pos: m.Pos, Kind: kind}
}

// Abandon removes the marker's Start if it is the last event in the buffer
// (nothing was emitted since it opened); otherwise it demotes it to a
// tombstone, which the sink skips over without opening a node.
func (b *Buffer) Abandon(m Marker) {
	if m.Pos == len(b.events)-1 {
		b.events = b.events[:m.Pos]
		return
	}
	b.events[m.Pos].Kind = Tombstone
}

// Precede opens a new Start event that, via a forward-parent link, causes
// the sink to reparent the earlier completed node inside the new one.
func (b *Buffer) Precede(completed CompletedMarker) Marker {
	pos := len(b.events)
	b.events = append(b.events, Event{Tag: TagStart, Kind: Tombstone, ForwardParent: -1})
	b.events[completed.Pos].ForwardParent = pos
	return Marker{Pos: pos}
}

// Token appends a Token(kind, length) event.
func (b *Buffer) Token(kind Kind, length int) {
	b.events = append(b.events, Event{Tag: TagToken, TokenKind: kind, Length: length})
}

// Error appends an Error(diagnostic) event.
func (b *Buffer) Error(d diagnostic.Diagnostic) {
	b.events = append(b.events, Event{Tag: TagError, Diagnostic: d})
}

// Len returns the number of events recorded so far. Used by checkpoints.
func (b *Buffer) Len() int { return len(b.events) }

// Truncate discards every event from index i onward. Used by rewind.
func (b *Buffer) Truncate(i int) { b.events = b.events[:i] }

// Events returns the finished, balanced event slice.
func (b *Buffer) Events() []Event { return b.events }
