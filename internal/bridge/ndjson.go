package bridge

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// ndjsonLine is one parsed line of a chat-trigger NDJSON response.
type ndjsonLine struct {
	Type    string
	Output  string
	Text    string
	Content string
}

// parseObject parses a line of JSON. Any valid JSON value is accepted;
// non-object values simply carry no fields, matching the upstream contract
// where only objects contribute content.
func parseObject(line string) (ndjsonLine, bool) {
	var v any
	if err := json.Unmarshal([]byte(line), &v); err != nil {
		return ndjsonLine{}, false
	}
	m, _ := v.(map[string]any)
	return ndjsonLine{
		Type:    stringField(m, "type"),
		Output:  stringField(m, "output"),
		Text:    stringField(m, "text"),
		Content: stringField(m, "content"),
	}, true
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// ExtractFragments splits a bulk NDJSON chat-trigger response into content
// fragments, in order. Content lines carry type "item" or one of the output
// fields; field priority is output, then text, then content. Lines that are
// not valid JSON are logged and skipped — a single bad line never fails the
// whole response.
func ExtractFragments(body []byte) []string {
	var fragments []string

	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		obj, ok := parseObject(line)
		if !ok {
			slog.Warn("Skipping non-JSON line in workflow response", "line", truncateForLog(line))
			continue
		}

		if obj.Type != "item" && obj.Output == "" && obj.Text == "" {
			continue
		}

		content := obj.Output
		if content == "" {
			content = obj.Text
		}
		if content == "" {
			content = obj.Content
		}
		if content != "" {
			fragments = append(fragments, content)
		}
	}
	return fragments
}

func truncateForLog(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
