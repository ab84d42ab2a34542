package parser

import "github.com/rslint/rslint-sub006/textedit"

// StrictOrigin records why strict mode is in effect, for diagnostics that
// need to point at the originating directive or module marker (§3).
type StrictOrigin int

const (
	NotStrict StrictOrigin = iota
	StrictModule
	StrictClassBody
	StrictDirective
)

// LabelInfo records where a statement label was declared.
type LabelInfo struct {
	Range textedit.Range
}

// State is the parser's mutable context record (§3 "Parser State"),
// snapshotted at each checkpoint and restored on rewind.
type State struct {
	Strict         StrictOrigin
	StrictRange    textedit.Range
	InGenerator    bool
	InAsync        bool
	InFunction     bool
	AllowObjectExpr bool // false disambiguates `{` as a block, not an object literal
	IncludeIn      bool  // false inside a for-head to disambiguate `in`
	AllowContinue  bool
	AllowBreak     bool
	Labels         map[string]LabelInfo
	IsModule       bool
	DefaultExportRange *textedit.Range
}

// NewState creates the initial state for a script or module parse.
// Module parsing starts in strict mode (§4.3).
func NewState(isModule bool) *State {
	s := &State{
		AllowObjectExpr: true,
		IncludeIn:       true,
		IsModule:        isModule,
		Labels:          map[string]LabelInfo{},
	}
	if isModule {
		s.Strict = StrictModule
	}
	return s
}

// Clone makes an independent copy for checkpoint/rewind.
func (s *State) Clone() *State {
	cp := *s
	cp.Labels = make(map[string]LabelInfo, len(s.Labels))
	for k, v := range s.Labels {
		cp.Labels[k] = v
	}
	if s.DefaultExportRange != nil {
		r := *s.DefaultExportRange
		cp.DefaultExportRange = &r
	}
	return &cp
}

func (s *State) IsStrict() bool { return s.Strict != NotStrict }
