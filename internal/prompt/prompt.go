package prompt

import (
    "fmt"
    "strings"
)

// Input bundles everything needed to compose the provider prompt for one
// request.
type Input struct {
    DocumentText       string
    SelectedElementIDs []string
    UserPrompt         string
}

// maxDirectResponseChars is the size above which the model is asked to switch
// to the batched transfer mode; mirrored in the system message below.
const maxDirectResponseChars = 50_000

// System returns the fixed system message establishing the JSON-only response
// contract, including the optional batched transfer mode for large documents.
func System() string {
    var sb strings.Builder
    sb.WriteString("You are a BPMN 2.0 process modeling assistant embedded in a diagram editor. ")
    sb.WriteString("You receive the current diagram as BPMN XML and a user instruction, and you return the updated diagram. ")
    sb.WriteString("Respond with strict JSON only, no narration outside the JSON object. The schema is ")
    sb.WriteString(`{"response": string, "updatedDocumentText": string, "impactAnalysis": string}. `)
    sb.WriteString("updatedDocumentText must be complete, well-formed BPMN 2.0 XML with the bpmn and bpmndi namespace declarations, a bpmn:process section, and matching bpmndi diagram elements. ")
    sb.WriteString("Never truncate the XML. ")
    sb.WriteString(fmt.Sprintf("If updatedDocumentText would exceed %d characters, instead set \"batched\": true and \"batchCount\": n, and split the XML across \"batchPart1\"..\"batchPartn\" so that concatenating the parts in order reproduces it exactly.", maxDirectResponseChars))
    return sb.String()
}

// User composes the per-request user message from the embedded document, the
// current selection and the user's instruction.
func User(in Input) string {
    var sb strings.Builder
    sb.WriteString("Current BPMN diagram:\n\n")
    sb.WriteString(in.DocumentText)
    if ids := cleanIDs(in.SelectedElementIDs); len(ids) > 0 {
        sb.WriteString("\n\nThe user currently has these elements selected: ")
        sb.WriteString(strings.Join(ids, ", "))
        sb.WriteString(". Interpret the instruction relative to this selection when it makes sense.")
    }
    sb.WriteString("\n\nInstruction: ")
    sb.WriteString(strings.TrimSpace(in.UserPrompt))
    return sb.String()
}

func cleanIDs(in []string) []string {
    out := make([]string, 0, len(in))
    for _, id := range in {
        if s := strings.TrimSpace(id); s != "" {
            out = append(out, s)
        }
    }
    return out
}
