package modelresp

import (
    "errors"
    "strings"
    "testing"

    "github.com/google/go-cmp/cmp"
)

func TestParse_BareJSON(t *testing.T) {
    raw := `{"response": "Added a review task.", "updatedDocumentText": "<bpmn:definitions/>", "impactAnalysis": "One new task."}`
    got, err := Parse(raw)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    want := Reply{
        Response:            "Added a review task.",
        UpdatedDocumentText: "<bpmn:definitions/>",
        ImpactAnalysis:      "One new task.",
    }
    if diff := cmp.Diff(want, got); diff != "" {
        t.Fatalf("reply mismatch (-want +got):\n%s", diff)
    }
}

func TestParse_FencedCodeBlock(t *testing.T) {
    raw := "Here is the updated diagram:\n\n```json\n{\"response\": \"Done.\", \"updatedDocumentText\": \"<bpmn:definitions/>\"}\n```\n\nLet me know if you need more changes."
    got, err := Parse(raw)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if got.Response != "Done." {
        t.Fatalf("response = %q", got.Response)
    }
    if got.UpdatedDocumentText != "<bpmn:definitions/>" {
        t.Fatalf("updatedDocumentText = %q", got.UpdatedDocumentText)
    }
}

func TestParse_BatchedReassemblyIsExactConcatenation(t *testing.T) {
    raw := `{"response": "ok", "batched": true, "batchCount": 2, "batchPart1": "<bpmn:definitions>", "batchPart2": "</bpmn:definitions>"}`
    got, err := Parse(raw)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !got.Batched {
        t.Fatalf("expected batched reply")
    }
    if got.UpdatedDocumentText != "<bpmn:definitions></bpmn:definitions>" {
        t.Fatalf("reassembled text = %q", got.UpdatedDocumentText)
    }
}

func TestParse_BatchedPartsOrdered(t *testing.T) {
    raw := `{"batched": true, "batchCount": 3, "batchPart3": "c", "batchPart1": "a", "batchPart2": "b"}`
    got, err := Parse(raw)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if got.UpdatedDocumentText != "abc" {
        t.Fatalf("parts must concatenate in declared order, got %q", got.UpdatedDocumentText)
    }
}

func TestParse_BatchedMissingPart(t *testing.T) {
    raw := `{"batched": true, "batchCount": 2, "batchPart1": "a"}`
    _, err := Parse(raw)
    var perr *ParseError
    if !errors.As(err, &perr) {
        t.Fatalf("expected ParseError, got %v", err)
    }
    if !strings.Contains(perr.Reason, "batchPart2") {
        t.Fatalf("error should name the missing part, got %q", perr.Reason)
    }
}

func TestParse_BatchedWithoutCount(t *testing.T) {
    _, err := Parse(`{"batched": true, "batchPart1": "a"}`)
    var perr *ParseError
    if !errors.As(err, &perr) {
        t.Fatalf("expected ParseError, got %v", err)
    }
}

func TestParse_NotJSON(t *testing.T) {
    for _, raw := range []string{"", "I could not update the diagram, sorry.", "```\nplain text\n```"} {
        if _, err := Parse(raw); err == nil {
            t.Fatalf("expected error for %q", raw)
        }
    }
}

func TestParse_ProseAroundBareObject(t *testing.T) {
    raw := "Sure! {\"response\": \"done\", \"updatedDocumentText\": \"<x/>\"} Hope that helps."
    got, err := Parse(raw)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if got.UpdatedDocumentText != "<x/>" {
        t.Fatalf("updatedDocumentText = %q", got.UpdatedDocumentText)
    }
}
