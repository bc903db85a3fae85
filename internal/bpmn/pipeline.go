package bpmn

import "strings"

// Attempt records one strategy outcome for diagnostics. The trail is kept for
// logging only; the pipeline result carries the final accepted text.
type Attempt struct {
    Strategy string
    Report   Report
}

// Result is the final verdict of the validation/repair pipeline for one
// candidate document.
type Result struct {
    Valid     bool
    Text      string // accepted document text; the original input on failure
    Sanitized bool   // accepted text came from the quote sanitizer
    Rebuilt   bool   // accepted text came from the rebuilder
    Error     string // final diagnostic when invalid
    Attempts  []Attempt
}

// Pipeline drives validation and the fixed two-stage repair sequence. The
// repair strategies sit behind Repairer so a grammar-aware fixer can replace
// the textual heuristics without touching the driver.
type Pipeline struct {
    Sanitizer Repairer
    Rebuilder Repairer
}

// NewPipeline returns a pipeline with the default repair strategies.
func NewPipeline() *Pipeline {
    return &Pipeline{Sanitizer: QuoteSanitizer{}, Rebuilder: ProcessRebuilder{}}
}

// Run validates the candidate document and applies repair strategies until
// one validates or both are exhausted: validate the original, sanitize when
// the diagnostic points at quoting, then rebuild as the last resort. On total
// failure Text is the unmodified input so the caller can fall back to its
// previous known-good document.
func (p *Pipeline) Run(text string) Result {
    rep := Validate(text)
    res := Result{Text: text, Attempts: []Attempt{{Strategy: "original", Report: rep}}}
    if rep.Valid {
        res.Valid = true
        return res
    }

    cur := text
    if p.Sanitizer != nil && mentionsQuoting(rep.Error) {
        if repaired, ok := p.Sanitizer.Repair(cur); ok {
            rep = Validate(repaired)
            res.Attempts = append(res.Attempts, Attempt{Strategy: p.Sanitizer.Name(), Report: rep})
            if rep.Valid {
                res.Valid = true
                res.Text = repaired
                res.Sanitized = true
                return res
            }
            cur = repaired
        }
    }

    if p.Rebuilder != nil {
        if repaired, ok := p.Rebuilder.Repair(cur); ok {
            rep = Validate(repaired)
            res.Attempts = append(res.Attempts, Attempt{Strategy: p.Rebuilder.Name(), Report: rep})
            if rep.Valid {
                res.Valid = true
                res.Text = repaired
                res.Rebuilt = true
                return res
            }
        }
    }

    res.Error = res.Attempts[len(res.Attempts)-1].Report.Error
    return res
}

// mentionsQuoting reports whether a diagnostic string points at attribute
// quoting problems. Both our own heuristics and encoding/xml syntax errors
// name the quote or the attribute in their messages.
func mentionsQuoting(diag string) bool {
    d := strings.ToLower(diag)
    return strings.Contains(d, "quote") || strings.Contains(d, "attribute") || strings.Contains(d, "unbalanced tags")
}
