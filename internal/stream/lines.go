package stream

import (
	"encoding/json"
	"strings"
)

// dataPrefix marks an SSE data line.
const dataPrefix = "data: "

// doneSentinel is the server's end-of-stream marker. It carries no content
// and is not itself a completion signal; completion is the transport ending.
const doneSentinel = "[DONE]"

// parseLine extracts a content fragment from one complete stream line.
// Returns ok=false for lines with nothing to emit: blanks, comments, the
// sentinel, and SSE field lines.
func parseLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" || strings.HasPrefix(trimmed, ":") {
		return "", false
	}

	if data, found := strings.CutPrefix(trimmed, dataPrefix); found {
		if data == doneSentinel {
			return "", false
		}
		return parsePayload(data)
	}

	// A bare line with no colon is a plain-text fragment. Lines with a
	// colon elsewhere are treated as SSE field lines and dropped, which
	// also loses any plain-text fragment that happens to contain a colon.
	if !strings.Contains(trimmed, ":") {
		return trimmed, true
	}
	return "", false
}

// parsePayload extracts content from a data payload: JSON objects by field
// priority chunk, text, output; bare JSON strings as themselves; anything
// that is not JSON as raw text.
func parsePayload(data string) (string, bool) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return data, true
	}

	switch v := v.(type) {
	case map[string]any:
		for _, key := range []string{"chunk", "text", "output"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s, true
			}
		}
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	default:
		return "", false
	}
}
