package llm

import (
	"encoding/json"
	"testing"
)

func mustParse(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("Repaired JSON does not parse: %v\n%s", err, s)
	}
	return out
}

func TestRepairTruncatedMidString(t *testing.T) {
	full := `{"title": "Hello World", "angle": "practical guide"}`
	truncated := full[:30] // cuts inside the second key

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	if _, ok := out["title"]; !ok {
		t.Errorf("Expected key 'title' to survive repair, got %v", out)
	}
}

func TestRepairTruncatedMidArray(t *testing.T) {
	truncated := `{"sections": [{"h2": "First"}, {"h2": "Seco`

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	sections, ok := out["sections"].([]any)
	if !ok {
		t.Fatalf("Expected sections array, got %T", out["sections"])
	}
	if len(sections) != 2 {
		t.Errorf("Expected 2 sections, got %d", len(sections))
	}
}

func TestRepairTruncatedMidObject(t *testing.T) {
	truncated := `{"a": 1, "b": {"c": "deep", "d":`

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	if out["a"] != float64(1) {
		t.Errorf("Expected a=1, got %v", out["a"])
	}
	if _, ok := out["b"].(map[string]any); !ok {
		t.Errorf("Expected nested object for b, got %T", out["b"])
	}
}

func TestRepairTruncatedAfterComma(t *testing.T) {
	truncated := `{"a": 1,`

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	if out["a"] != float64(1) {
		t.Errorf("Expected a=1, got %v", out["a"])
	}
}

func TestRepairTruncatedMidKey(t *testing.T) {
	truncated := `{"title": "ok", "ang`

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	if out["title"] != "ok" {
		t.Errorf("Expected title to survive, got %v", out["title"])
	}
}

func TestRepairTruncatedAfterKeyQuote(t *testing.T) {
	truncated := `{"a": 1, "b"`

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	if out["a"] != float64(1) {
		t.Errorf("Expected a=1, got %v", out["a"])
	}
	if v, ok := out["b"]; !ok || v != nil {
		t.Errorf("Expected dangling key b to get a null value, got %v (present=%v)", v, ok)
	}
}

func TestRepairTruncatedAfterNestedKeyQuote(t *testing.T) {
	truncated := `{"outer": {"inner"`

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	nested, ok := out["outer"].(map[string]any)
	if !ok {
		t.Fatalf("Expected nested object for outer, got %T", out["outer"])
	}
	if v, ok := nested["inner"]; !ok || v != nil {
		t.Errorf("Expected dangling nested key to get a null value, got %v (present=%v)", v, ok)
	}
}

func TestRepairTruncatedTrailingEscape(t *testing.T) {
	truncated := `{"text": "line one\`

	repaired := RepairTruncatedJSON(truncated)
	mustParse(t, repaired)
}

func TestRepairRespectsEscapedQuotes(t *testing.T) {
	truncated := `{"text": "she said \"hi\" and`

	repaired := RepairTruncatedJSON(truncated)
	out := mustParse(t, repaired)

	if _, ok := out["text"].(string); !ok {
		t.Errorf("Expected string value for text, got %T", out["text"])
	}
}

func TestRepairWellFormedIsUnchanged(t *testing.T) {
	full := `{"a": [1, 2, 3], "b": "done"}`

	repaired := RepairTruncatedJSON(full)
	if repaired != full {
		t.Errorf("Well-formed JSON should pass through unchanged, got %s", repaired)
	}
}

func TestRepairRoundTripKeysMatch(t *testing.T) {
	full := `{"metaTitle": "A Title", "metaDescription": "A description", "keywords": ["one", "two"], "tags": ["x"]}`

	// Truncate at several points and verify every key completed before the
	// cut survives the repair.
	cut := len(`{"metaTitle": "A Title", "metaDescription": "A description", "keywords": ["one", "tw`)
	repaired := RepairTruncatedJSON(full[:cut])
	out := mustParse(t, repaired)

	for _, key := range []string{"metaTitle", "metaDescription", "keywords"} {
		if _, ok := out[key]; !ok {
			t.Errorf("Expected key %q to survive repair", key)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1", `{"a":1`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.input); got != tc.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
