package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resumeSchemaJSON = `{
	"type": "object",
	"properties": {
		"summary": {"type": "string", "minLength": 1}
	},
	"required": ["summary"],
	"additionalProperties": false
}`

var resumeSchema = jsonschema.MustCompileString("resume.json", resumeSchemaJSON)

// parseResume extracts and validates the {"summary": "..."} payload a
// provider returns. Markdown code fences around the JSON are tolerated
// because chat models add them despite instructions.
func parseResume(raw string) (string, error) {
	cleaned := stripCodeFences(raw)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return "", fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := resumeSchema.Validate(v); err != nil {
		return "", fmt.Errorf("response does not match summary schema: %w", err)
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}
	return strings.TrimSpace(out.Summary), nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
