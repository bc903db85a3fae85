package bpmn

import (
    "strings"
    "testing"
)

const validDoc = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI" id="Definitions_1" targetNamespace="http://bpmn.io/schema/bpmn">
  <bpmn:process id="Process_1" isExecutable="false">
    <bpmn:startEvent id="StartEvent_1"/>
    <bpmn:task id="Task_1" name="Review order"/>
    <bpmn:endEvent id="EndEvent_1"/>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="StartEvent_1" targetRef="Task_1"/>
    <bpmn:sequenceFlow id="Flow_2" sourceRef="Task_1" targetRef="EndEvent_1"/>
  </bpmn:process>
  <bpmndi:BPMNDiagram id="BPMNDiagram_1">
    <bpmndi:BPMNPlane id="BPMNPlane_1" bpmnElement="Process_1"/>
  </bpmndi:BPMNDiagram>
</bpmn:definitions>
`

func TestValidateStructure_OK(t *testing.T) {
    v := ValidateStructure(validDoc)
    if !v.Valid {
        t.Fatalf("expected valid document, got error: %s", v.Error)
    }
}

func TestValidateStructure_MissingRootMarkers(t *testing.T) {
    v := ValidateStructure("<root><a></a></root>")
    if v.Valid {
        t.Fatalf("expected invalid document")
    }
    if !strings.Contains(v.Error, "bpmn:definitions") {
        t.Fatalf("error should name the missing root markers, got %q", v.Error)
    }
}

func TestValidateStructure_MissingProcessMarkers(t *testing.T) {
    doc := strings.ReplaceAll(validDoc, "bpmn:process", "bpmn:collaboration")
    v := ValidateStructure(doc)
    if v.Valid {
        t.Fatalf("expected invalid document")
    }
    if !strings.Contains(v.Error, "bpmn:process") {
        t.Fatalf("error should name the missing process markers, got %q", v.Error)
    }
}

func TestValidateStructure_UnbalancedTagsNamesCounts(t *testing.T) {
    doc := strings.Replace(validDoc, `<bpmndi:BPMNPlane id="BPMNPlane_1" bpmnElement="Process_1"/>`, `<bpmndi:BPMNPlane id="BPMNPlane_1" bpmnElement="Process_1">`, 1)
    v := ValidateStructure(doc)
    if v.Valid {
        t.Fatalf("expected invalid document")
    }
    if !strings.Contains(v.Error, "unbalanced tags") || !strings.Contains(v.Error, "open") || !strings.Contains(v.Error, "self-closing") {
        t.Fatalf("error should include the three counts, got %q", v.Error)
    }
}

func TestValidateStructure_DoubledAngleBrackets(t *testing.T) {
    // Double a closing bracket: tag balance still holds, so the check fires.
    doc := strings.Replace(validDoc, `isExecutable="false">`, `isExecutable="false">>`, 1)
    v := ValidateStructure(doc)
    if v.Valid {
        t.Fatalf("expected invalid document")
    }
    if !strings.Contains(v.Error, "doubled angle brackets") {
        t.Fatalf("expected doubled angle bracket diagnostic, got %q", v.Error)
    }
}

func TestValidateStructure_EmptyInput(t *testing.T) {
    for _, in := range []string{"", "   \n\t"} {
        if v := ValidateStructure(in); v.Valid {
            t.Fatalf("expected invalid verdict for %q", in)
        }
    }
}

func TestParseCheck_WellFormed(t *testing.T) {
    if errs := ParseCheck(validDoc); len(errs) != 0 {
        t.Fatalf("expected no parser errors, got %v", errs)
    }
}

func TestParseCheck_ReportsErrorInsteadOfPanicking(t *testing.T) {
    errs := ParseCheck(`<bpmn:definitions><bpmn:process id="P1></bpmn:definitions>`)
    if len(errs) == 0 {
        t.Fatalf("expected parser errors")
    }
}

func TestValidateDomainRules(t *testing.T) {
    if v := ValidateDomainRules(validDoc); !v.Valid {
        t.Fatalf("expected valid, got %q", v.Error)
    }

    noNS := strings.Replace(validDoc, `xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI" `, "", 1)
    if v := ValidateDomainRules(noNS); v.Valid || !strings.Contains(v.Error, "namespace") {
        t.Fatalf("expected missing-namespace error, got valid=%t %q", v.Valid, v.Error)
    }

    empty := `<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI"><bpmn:process id="P1"></bpmn:process></bpmn:definitions>`
    if v := ValidateDomainRules(empty); v.Valid || !strings.Contains(v.Error, "flow elements") {
        t.Fatalf("expected missing-element error, got valid=%t %q", v.Valid, v.Error)
    }
}

func TestValidate_AggregatesFailuresInFixedOrder(t *testing.T) {
    r := Validate("<root><a></a></root>")
    if r.Valid {
        t.Fatalf("expected invalid report")
    }
    si := strings.Index(r.Error, "Structural:")
    di := strings.Index(r.Error, "DomainRules:")
    if si < 0 || di < 0 {
        t.Fatalf("expected component-prefixed messages, got %q", r.Error)
    }
    if si > di {
        t.Fatalf("expected Structural before DomainRules, got %q", r.Error)
    }
    if !strings.Contains(r.Error, " | ") {
        t.Fatalf("expected pipe-joined diagnostics, got %q", r.Error)
    }
}

func TestValidate_ValidDocument(t *testing.T) {
    r := Validate(validDoc)
    if !r.Valid {
        t.Fatalf("expected valid report, got %q", r.Error)
    }
    if r.Error != "" {
        t.Fatalf("valid report must carry no error, got %q", r.Error)
    }
    if !r.BalanceOK {
        t.Fatalf("expected balanced tag counts, got %+v", r.Counts)
    }
}
