package bpmn

import (
    "encoding/xml"
    "fmt"
    "io"
    "strings"

    "golang.org/x/net/html/charset"
)

// Verdict is the outcome of a single validation step.
type Verdict struct {
    Valid bool
    Error string
}

// Report aggregates the outcome of every validation step for one candidate
// document. Error is the pipe-joined concatenation of each failing step's
// message prefixed by the step name, in a fixed order.
type Report struct {
    Valid      bool
    Error      string
    Structural Verdict
    Parser     []string
    Domain     Verdict
    Counts     TagCounts
    BalanceOK  bool
}

const (
    definitionsOpen  = "<bpmn:definitions"
    definitionsClose = "</bpmn:definitions>"
    processOpen      = "<bpmn:process"
    processClose     = "</bpmn:process>"
)

// requiredNamespaces are matched as exact substrings; a document that renames
// the prefixes is rejected even if it is namespace-equivalent, which is the
// contract the diagram renderer expects.
var requiredNamespaces = []string{
    `xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL"`,
    `xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI"`,
}

// elementKinds is the fixed set of recognized flow-element markers. A valid
// process contains at least one of these.
var elementKinds = []string{
    "<bpmn:startEvent",
    "<bpmn:endEvent",
    "<bpmn:task",
    "<bpmn:userTask",
    "<bpmn:serviceTask",
    "<bpmn:scriptTask",
    "<bpmn:exclusiveGateway",
    "<bpmn:parallelGateway",
    "<bpmn:sequenceFlow",
    "<bpmn:intermediateCatchEvent",
    "<bpmn:subProcess",
}

// ValidateStructure runs cheap textual checks in order, short-circuiting on
// the first failure.
func ValidateStructure(text string) Verdict {
    if strings.TrimSpace(text) == "" {
        return Verdict{Error: "document text is empty"}
    }
    if !strings.Contains(text, definitionsOpen) || !strings.Contains(text, definitionsClose) {
        return Verdict{Error: "missing <bpmn:definitions> root element markers"}
    }
    if !strings.Contains(text, processOpen) || !strings.Contains(text, processClose) {
        return Verdict{Error: "missing <bpmn:process> section markers"}
    }
    counts := CountTags(text)
    if !counts.Balanced() {
        return Verdict{Error: fmt.Sprintf("unbalanced tags: %d open, %d close, %d self-closing", counts.Open, counts.Close, counts.SelfClosing)}
    }
    if strings.Contains(text, "<<") || strings.Contains(text, ">>") {
        return Verdict{Error: "malformed syntax: doubled angle brackets"}
    }
    return Verdict{Valid: true}
}

// ParseCheck attempts a real parse of the document text and returns any
// parser-reported errors. Errors are collected, never propagated.
func ParseCheck(text string) []string {
    if strings.TrimSpace(text) == "" {
        return []string{"document text is empty"}
    }
    dec := xml.NewDecoder(strings.NewReader(text))
    dec.CharsetReader = charset.NewReaderLabel
    for {
        _, err := dec.Token()
        if err == io.EOF {
            return nil
        }
        if err != nil {
            return []string{err.Error()}
        }
    }
}

// ValidateDomainRules verifies the required namespace declarations are
// present and that the document contains at least one recognized flow
// element.
func ValidateDomainRules(text string) Verdict {
    for _, ns := range requiredNamespaces {
        if !strings.Contains(text, ns) {
            return Verdict{Error: "missing required namespace declaration: " + ns}
        }
    }
    for _, kind := range elementKinds {
        if strings.Contains(text, kind) {
            return Verdict{Valid: true}
        }
    }
    return Verdict{Error: "no recognized BPMN flow elements found"}
}

// Validate runs every validation step against the candidate document and
// aggregates the results. The document is valid only when all steps pass.
func Validate(text string) Report {
    r := Report{
        Structural: ValidateStructure(text),
        Parser:     ParseCheck(text),
        Domain:     ValidateDomainRules(text),
        Counts:     CountTags(text),
    }
    r.BalanceOK = r.Counts.Balanced()

    var failures []string
    if !r.Structural.Valid {
        failures = append(failures, "Structural: "+r.Structural.Error)
    }
    if len(r.Parser) > 0 {
        failures = append(failures, "Parser: "+strings.Join(r.Parser, "; "))
    }
    if !r.BalanceOK {
        failures = append(failures, fmt.Sprintf("TagBalance: %d open, %d close, %d self-closing", r.Counts.Open, r.Counts.Close, r.Counts.SelfClosing))
    }
    if !r.Domain.Valid {
        failures = append(failures, "DomainRules: "+r.Domain.Error)
    }
    if len(failures) > 0 {
        r.Error = strings.Join(failures, " | ")
        return r
    }
    r.Valid = true
    return r
}
