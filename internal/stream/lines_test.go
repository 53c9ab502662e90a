package stream

import (
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"blank", "", "", false},
		{"whitespace only", "   ", "", false},
		{"comment", ": keepalive", "", false},
		{"chunk payload", `data: {"chunk":"Hi"}`, "Hi", true},
		{"text payload", `data: {"text":"from text"}`, "from text", true},
		{"output payload", `data: {"output":"from output"}`, "from output", true},
		{"chunk wins over text", `data: {"chunk":"a","text":"b"}`, "a", true},
		{"sentinel", "data: [DONE]", "", false},
		{"bare json string", `data: "quoted"`, "quoted", true},
		{"non-json data", "data: raw words here", "raw words here", true},
		{"json number emits nothing", "data: 7", "", false},
		{"json object without fields", `data: {"type":"begin"}`, "", false},
		{"plain text no colon", "justtext", "justtext", true},
		{"sse field line dropped", "event: message", "", false},
		{"plain text with colon dropped", "note: colons swallow this", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLine(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseLine(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}
