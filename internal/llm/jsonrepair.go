package llm

import "strings"

// RepairTruncatedJSON heuristically completes a JSON document that was cut
// off by a token limit. It scans the text tracking brace/bracket nesting and
// whether the cursor is inside a string (respecting backslash escapes), then
// closes any open string and any open containers in nesting order. A
// dangling key or separator gets a null value so the result stays parseable.
// Values truncated mid-literal (e.g. "tru") are not recoverable.
func RepairTruncatedJSON(s string) string {
	var stack []byte
	inString := false
	escaped := false
	stringIsKey := false
	danglingKey := false // a key's closing quote was seen but no ':' yet
	prev := byte(0)      // last significant byte seen outside strings

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
				danglingKey = stringIsKey
				prev = '"'
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
			danglingKey = false
			stringIsKey = len(stack) > 0 && stack[len(stack)-1] == '{' && (prev == '{' || prev == ',')
		case ' ', '\t', '\n', '\r':
			// insignificant
		case '{', '[':
			stack = append(stack, ch)
			danglingKey = false
			prev = ch
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			danglingKey = false
			prev = ch
		default:
			danglingKey = false
			prev = ch
		}
	}

	out := s
	if inString {
		if escaped {
			out = out[:len(out)-1]
		}
		out += `"`
		if stringIsKey {
			out += `: null`
		}
	} else {
		trimmed := strings.TrimRight(out, " \t\n\r")
		switch {
		case strings.HasSuffix(trimmed, ","):
			out = trimmed[:len(trimmed)-1]
		case strings.HasSuffix(trimmed, ":"):
			out = trimmed + " null"
		case danglingKey:
			out = trimmed + ": null"
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out += "}"
		} else {
			out += "]"
		}
	}

	return out
}

// stripCodeFence removes a surrounding markdown code fence that models
// sometimes wrap JSON output in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// excerpt returns at most n bytes of s for diagnostics.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
