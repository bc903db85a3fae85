package prompt

import (
    "strings"
    "testing"
)

func TestSystem_EstablishesJSONContract(t *testing.T) {
    s := System()
    for _, want := range []string{"strict JSON", "updatedDocumentText", "batchPart1", "batchCount"} {
        if !strings.Contains(s, want) {
            t.Fatalf("system message missing %q", want)
        }
    }
}

func TestUser_IncludesDocumentAndInstruction(t *testing.T) {
    u := User(Input{
        DocumentText: "<bpmn:definitions/>",
        UserPrompt:   "add an approval task",
    })
    if !strings.Contains(u, "<bpmn:definitions/>") {
        t.Fatalf("user message missing document text:\n%s", u)
    }
    if !strings.Contains(u, "add an approval task") {
        t.Fatalf("user message missing instruction:\n%s", u)
    }
    if strings.Contains(u, "selected") {
        t.Fatalf("selection note should be omitted without a selection:\n%s", u)
    }
}

func TestUser_NamesSelectedElements(t *testing.T) {
    u := User(Input{
        DocumentText:       "<bpmn:definitions/>",
        SelectedElementIDs: []string{"Task_1", " ", "Gateway_2"},
        UserPrompt:         "rename these",
    })
    if !strings.Contains(u, "Task_1, Gateway_2") {
        t.Fatalf("user message should list the cleaned selection:\n%s", u)
    }
}
