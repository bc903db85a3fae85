// Command genai-stub is a local OpenAI-compatible stub for developing the
// editor without real provider credentials. It answers every chat completion
// with a fixed, valid BPMN reply so the whole request path can be exercised:
//
//	ADDR=:8081 genai-stub &
//	bpmn-genai serve --openai.base http://localhost:8081/v1 --openai.key stub
package main

import (
    "encoding/json"
    "log"
    "net/http"
    "os"
    "strings"
)

const stubDoc = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI" id="Definitions_Stub" targetNamespace="http://bpmn.io/schema/bpmn">
  <bpmn:process id="Process_Stub" isExecutable="false">
    <bpmn:startEvent id="StartEvent_1"/>
    <bpmn:task id="Task_1" name="Stubbed task"/>
    <bpmn:endEvent id="EndEvent_1"/>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="StartEvent_1" targetRef="Task_1"/>
    <bpmn:sequenceFlow id="Flow_2" sourceRef="Task_1" targetRef="EndEvent_1"/>
  </bpmn:process>
  <bpmndi:BPMNDiagram id="BPMNDiagram_1">
    <bpmndi:BPMNPlane id="BPMNPlane_1" bpmnElement="Process_Stub"/>
  </bpmndi:BPMNDiagram>
</bpmn:definitions>`

func main() {
    model := os.Getenv("MODEL_ID")
    if strings.TrimSpace(model) == "" {
        model = "stub-model"
    }
    addr := os.Getenv("ADDR")
    if strings.TrimSpace(addr) == "" {
        addr = ":8081"
    }

    mux := http.NewServeMux()
    mux.HandleFunc("/v1/models", func(w http.ResponseWriter, _ *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(map[string]any{
            "data": []map[string]any{{"id": model, "object": "model"}},
        })
    })
    mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
        defer r.Body.Close()
        reply, _ := json.Marshal(map[string]string{
            "response":            "Stub reply: replaced the diagram with a fixed three-step process.",
            "updatedDocumentText": stubDoc,
            "impactAnalysis":      "The previous diagram content was replaced entirely.",
        })
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(map[string]any{
            "choices": []map[string]any{
                {"message": map[string]string{"role": "assistant", "content": string(reply)}},
            },
        })
    })

    log.Printf("genai-stub listening on %s (model=%s)", addr, model)
    if err := http.ListenAndServe(addr, mux); err != nil {
        log.Fatal(err)
    }
}
