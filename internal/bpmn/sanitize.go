package bpmn

import (
    "regexp"
    "strings"
)

// Repairer attempts to transform invalid document text into text that
// validates. ok reports whether the strategy produced a candidate at all;
// the caller decides acceptance by re-validating.
type Repairer interface {
    Name() string
    Repair(text string) (repaired string, ok bool)
}

// QuoteSanitizer applies best-effort textual repairs for the quoting mistakes
// language models most often make inside attribute values. It is pattern
// based rewriting, not a grammar-aware fix: pathological documents whose
// attribute values legitimately contain adjacent quote characters can be
// altered. See the known lossy edge case note in DESIGN.md.
type QuoteSanitizer struct{}

var (
    // name="a"b"  ->  name="ab"   (collapse an improperly nested quote run)
    nestedQuoteRe = regexp.MustCompile(`="([^"<>=]*)"([^\s=<>/"][^"<>=]*)"`)
    // name="a followed by the next attribute without a closing quote
    missingQuoteRe = regexp.MustCompile(`="([^"<>]*?)(\s+[A-Za-z][A-Za-z0-9:_-]*=")`)
)

func (QuoteSanitizer) Name() string { return "sanitize" }

// Repair applies the quote heuristics unconditionally in fixed order. It
// never fails: output is always a candidate, possibly unchanged.
func (QuoteSanitizer) Repair(text string) (string, bool) {
    if strings.TrimSpace(text) == "" {
        return text, false
    }
    out := text
    // Collapse runs of nested quotes. Re-apply until the text settles so
    // that a="x"y"z" collapses fully.
    for {
        next := nestedQuoteRe.ReplaceAllString(out, `="$1$2"`)
        if next == out {
            break
        }
        out = next
    }
    out = missingQuoteRe.ReplaceAllString(out, `="$1"$2`)
    return out, true
}
