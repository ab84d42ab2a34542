// Package diagnostic implements the multi-labeled, severity-tagged
// diagnostic model (§3) produced by the lexer, parser, directive parser,
// and rule engine.
//
// Grounded on _examples/robfig-soy/errortypes/filepos.go's ErrFilePos
// interface (a positional-error wrapper), extended with labels and
// suggestions per spec.md's data model, and on
// original_source/crates/rslint_core/src/rule.rs's Outcome reduction.
package diagnostic

import "github.com/rslint/rslint-sub006/textedit"

// Severity is a diagnostic's level.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
	Bug
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Bug:
		return "bug"
	default:
		return "unknown"
	}
}

// Label attaches a message to a byte range within a file.
type Label struct {
	FileID  int
	Range   textedit.Range
	Message string
	Primary bool
}

// FooterSeverity is the severity of a footer note, independent of the
// diagnostic's own severity (e.g. an error can carry a "help" footer).
type FooterSeverity int

const (
	FooterNote FooterSeverity = iota
	FooterHelp
)

// Footer is an ordered trailing note on a diagnostic.
type Footer struct {
	Severity FooterSeverity
	Message  string
}

// Applicability distinguishes machine-safe replacements from suggestions
// that require human confirmation (§9).
type Applicability int

const (
	Unspecified Applicability = iota
	MaybeIncorrect
	HasPlaceholders
	Always
)

// Suggestion is a proposed code fix: replace Range with Replacement.
type Suggestion struct {
	FileID        int
	Range         textedit.Range
	Message       string
	Replacement   string
	Applicability Applicability
}

// Diagnostic is a severity-tagged, multi-labeled message with optional code
// suggestions (§3).
type Diagnostic struct {
	Severity    Severity
	Code        string
	Title       string
	Labels      []Label
	Footers     []Footer
	Suggestions []Suggestion
}

// New starts building a diagnostic at the given severity.
func New(severity Severity, code, title string) *Diagnostic {
	return &Diagnostic{Severity: severity, Code: code, Title: title}
}

func Errorf(code, title string) *Diagnostic  { return New(Error, code, title) }
func Warningf(code, title string) *Diagnostic { return New(Warning, code, title) }
func Notef(code, title string) *Diagnostic    { return New(Note, code, title) }

// Primary adds a primary label.
func (d *Diagnostic) Primary(fileID int, r textedit.Range, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{FileID: fileID, Range: r, Message: message, Primary: true})
	return d
}

// Secondary adds a secondary (supporting) label.
func (d *Diagnostic) Secondary(fileID int, r textedit.Range, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{FileID: fileID, Range: r, Message: message, Primary: false})
	return d
}

// FooterNoteText adds a footer note.
func (d *Diagnostic) FooterNoteText(message string) *Diagnostic {
	d.Footers = append(d.Footers, Footer{Severity: FooterNote, Message: message})
	return d
}

// FooterHelpText adds a footer help note.
func (d *Diagnostic) FooterHelpText(message string) *Diagnostic {
	d.Footers = append(d.Footers, Footer{Severity: FooterHelp, Message: message})
	return d
}

// WithSuggestion attaches a code suggestion.
func (d *Diagnostic) WithSuggestion(fileID int, r textedit.Range, message, replacement string, applicability Applicability) *Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{
		FileID: fileID, Range: r, Message: message,
		Replacement: replacement, Applicability: applicability,
	})
	return d
}

// PrimaryRange returns the range of the first primary label, if any. Used
// for sorting diagnostics by position.
func (d *Diagnostic) PrimaryRange() (textedit.Range, bool) {
	for _, l := range d.Labels {
		if l.Primary {
			return l.Range, true
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0].Range, true
	}
	return textedit.Range{}, false
}

// Outcome is the severity-maximum over a set of diagnostics: success,
// warning, or failure (§7, §8). Grounded on
// original_source/crates/rslint_core/src/rule.rs's Outcome/From<Diagnostics>.
type Outcome int

const (
	Success Outcome = iota
	OutcomeWarning
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case OutcomeWarning:
		return "warning"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// ExitCode maps an Outcome to the exit code a CLI collaborator should use
// (§6): 0 success, 1 warning, 2 failure. Internal errors are the host's
// concern and use other nonzero codes outside this core.
func (o Outcome) ExitCode() int {
	switch o {
	case Success:
		return 0
	case OutcomeWarning:
		return 1
	default:
		return 2
	}
}

// OutcomeOf reduces a diagnostic slice to its overall Outcome.
func OutcomeOf(diagnostics []Diagnostic) Outcome {
	outcome := Success
	for _, d := range diagnostics {
		switch d.Severity {
		case Error, Bug:
			outcome = Failure
		case Warning:
			if outcome != Failure {
				outcome = OutcomeWarning
			}
		}
	}
	return outcome
}

// MergeOutcomes combines several outcomes, taking the worst.
func MergeOutcomes(outcomes ...Outcome) Outcome {
	overall := Success
	for _, o := range outcomes {
		switch o {
		case Failure:
			overall = Failure
		case OutcomeWarning:
			if overall != Failure {
				overall = OutcomeWarning
			}
		}
	}
	return overall
}
