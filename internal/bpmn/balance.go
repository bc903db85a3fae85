package bpmn

import (
    "regexp"
    "strings"
)

// TagCounts holds the raw tag counts derived from document text. Counts are
// purely textual; no element tree is built.
type TagCounts struct {
    Open        int
    Close       int
    SelfClosing int
}

var (
    openTagRe        = regexp.MustCompile(`<[A-Za-z][^<>]*>`)
    closeTagRe       = regexp.MustCompile(`</[A-Za-z][^<>]*>`)
    selfClosingTagRe = regexp.MustCompile(`<[A-Za-z][^<>]*/>`)
)

// CountTags scans document text and counts opening, closing and self-closing
// markers. Self-closing tags also match the opening pattern, so they are
// counted in both Open and SelfClosing; Balanced accounts for that.
func CountTags(text string) TagCounts {
    if strings.TrimSpace(text) == "" {
        return TagCounts{}
    }
    return TagCounts{
        Open:        len(openTagRe.FindAllString(text, -1)),
        Close:       len(closeTagRe.FindAllString(text, -1)),
        SelfClosing: len(selfClosingTagRe.FindAllString(text, -1)),
    }
}

// Balanced reports whether regular opening tags (those not self-closing)
// match closing tags. The zero value is not balanced, so empty input yields
// an invalid result rather than a vacuous pass.
func (c TagCounts) Balanced() bool {
    if c.Open == 0 && c.Close == 0 && c.SelfClosing == 0 {
        return false
    }
    return c.Open-c.SelfClosing == c.Close
}
