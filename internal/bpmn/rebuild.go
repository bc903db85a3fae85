package bpmn

import (
    "regexp"
    "strings"
)

// ProcessRebuilder is the last-resort repair strategy: it extracts the
// innermost well-formed process section and wraps it in a minimal envelope
// that is valid by construction. The companion diagram section is left empty;
// the editor relays out the diagram on import.
type ProcessRebuilder struct{}

var (
    processSectionRe = regexp.MustCompile(`(?s)<bpmn:process\b[^>]*>.*?</bpmn:process>`)
    processIDRe      = regexp.MustCompile(`<bpmn:process\b[^>]*\bid="([^"<>]+)"`)
)

const envelopeHeader = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI" xmlns:dc="http://www.omg.org/spec/DD/20100524/DC" xmlns:di="http://www.omg.org/spec/DD/20100524/DI" id="Definitions_Rebuilt" targetNamespace="http://bpmn.io/schema/bpmn">
`

func (ProcessRebuilder) Name() string { return "rebuild" }

// Repair locates the process section by pattern match and wraps it in the
// fixed envelope. It fails when no process section is present; the caller
// must then keep the previous known-good document.
func (ProcessRebuilder) Repair(text string) (string, bool) {
    section := processSectionRe.FindString(text)
    if section == "" {
        return "", false
    }
    processID := "Process_1"
    if m := processIDRe.FindStringSubmatch(section); m != nil {
        processID = m[1]
    }
    var sb strings.Builder
    sb.WriteString(envelopeHeader)
    sb.WriteString("  ")
    sb.WriteString(section)
    sb.WriteString("\n  <bpmndi:BPMNDiagram id=\"BPMNDiagram_1\">\n")
    sb.WriteString("    <bpmndi:BPMNPlane id=\"BPMNPlane_1\" bpmnElement=\"")
    sb.WriteString(processID)
    sb.WriteString("\"/>\n")
    sb.WriteString("  </bpmndi:BPMNDiagram>\n")
    sb.WriteString("</bpmn:definitions>\n")
    return sb.String(), true
}
