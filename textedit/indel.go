// Package textedit implements the Indel text-edit model shared by
// incremental reparse (edit application before relexing) and the autofix
// engine (applying a batch of rule-produced edits to source text).
//
// Grounded on original_source/crates/rslint_core/src/autofix/mod.rs's
// Fixer/Indel shape, re-expressed in Go.
package textedit

import (
	"fmt"
	"sort"
	"strings"
)

// Range is a half-open byte range [Start, End) into a source string.
type Range struct {
	Start, End int
}

func (r Range) Len() int { return r.End - r.Start }

// Overlaps reports whether two ranges share any byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Contains reports whether r fully contains o.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Indel is an insert-at-offset, a delete-range, or the combined replace of
// (range, text).
type Indel struct {
	Delete Range  // delete range (Start == End for a pure insert)
	Insert string // replacement text ("" for a pure delete)
}

// NewDelete builds an Indel that deletes a range with no replacement.
func NewDelete(r Range) Indel { return Indel{Delete: r} }

// NewInsert builds an Indel that inserts text at an offset.
func NewInsert(offset int, text string) Indel {
	return Indel{Delete: Range{offset, offset}, Insert: text}
}

// NewReplace builds an Indel that replaces a range with text.
func NewReplace(r Range, text string) Indel { return Indel{Delete: r, Insert: text} }

// Apply applies a batch of edits to src and returns the result. Edits in a
// single batch must have pairwise-disjoint delete ranges; Apply sorts them
// by start offset, rejects any overlapping pair with a descriptive error
// (§4.9's "autofix conflict" error kind names this case), and then builds
// the result in one pass against the original offsets, so no edit shifts
// the position of another.
func Apply(src string, indels []Indel) (string, error) {
	if len(indels) == 0 {
		return src, nil
	}
	sorted := make([]Indel, len(indels))
	copy(sorted, indels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Delete.Start < sorted[j].Delete.Start })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Delete.Overlaps(sorted[i-1].Delete) {
			return "", fmt.Errorf("textedit: overlapping edits at [%d,%d) and [%d,%d)",
				sorted[i-1].Delete.Start, sorted[i-1].Delete.End,
				sorted[i].Delete.Start, sorted[i].Delete.End)
		}
	}

	var b strings.Builder
	b.Grow(len(src))
	cur := 0
	for _, e := range sorted {
		if e.Delete.Start < cur || e.Delete.End > len(src) {
			return "", fmt.Errorf("textedit: edit range [%d,%d) out of bounds", e.Delete.Start, e.Delete.End)
		}
		b.WriteString(src[cur:e.Delete.Start])
		b.WriteString(e.Insert)
		cur = e.Delete.End
	}
	b.WriteString(src[cur:])
	return b.String(), nil
}

// Disjoint filters indels to a maximal subset with pairwise-disjoint delete
// ranges, in the order encountered, dropping later conflicting ones. This
// implements the autofix "first-seen wins, defer others" conflict
// resolution (§7): deferred edits are returned separately so the caller can
// retry them on the next convergence-loop iteration.
func Disjoint(indels []Indel) (kept, deferred []Indel) {
	for _, e := range indels {
		ok := true
		for _, k := range kept {
			if e.Delete.Overlaps(k.Delete) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, e)
		} else {
			deferred = append(deferred, e)
		}
	}
	return kept, deferred
}

// Shift returns offset shifted by the net length change of edits that lie
// entirely before it, used for diagnostic remapping after a reparse
// (§4.6's "Diagnostic remapping").
func Shift(offset int, edits []Indel) int {
	delta := 0
	for _, e := range edits {
		if e.Delete.End <= offset {
			delta += len(e.Insert) - e.Delete.Len()
		}
	}
	return offset + delta
}
