package optimizer

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"score": 0.8}`, `{"score": 0.8}`},
		{"surrounded by prose", `Here you go: {"score": 0.8} hope it helps`, `{"score": 0.8}`},
		{"json fence", "```json\n{\"score\": 0.8}\n```", "{\"score\": 0.8}"},
		{"plain fence", "```\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"nested objects", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"braces in strings", `{"msg": "use {x} here"}`, `{"msg": "use {x} here"}`},
		{"no object", "nothing here", ""},
		{"unbalanced", `{"a": 1`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONObject(tt.input); got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeJSONReply(t *testing.T) {
	var result EvaluationResult
	reply := "The evaluation:\n```json\n{\"score\": 0.75, \"global_feedback\": \"decent\"}\n```"
	if err := decodeJSONReply(reply, &result); err != nil {
		t.Fatalf("decodeJSONReply failed: %v", err)
	}
	if result.Score != 0.75 || result.GlobalFeedback != "decent" {
		t.Errorf("unexpected result: %+v", result)
	}

	if err := decodeJSONReply("no json at all", &result); err == nil {
		t.Error("expected error for reply without JSON")
	}
}
