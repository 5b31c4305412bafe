package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// RecoveryError reports that no JSON object could be recovered from a
// model response. It carries the head and tail of the raw text so the
// failure can be diagnosed without logging the full completion.
type RecoveryError struct {
	Head string
	Tail string
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("no JSON object recovered from response (head=%q tail=%q)", e.Head, e.Tail)
}

const recoverySnippetLen = 200

var (
	fenceLineRe = regexp.MustCompile("(?m)^\\s*```(?:json)?\\s*$")
	objectRe    = regexp.MustCompile(`(?s)\{.*\}`)

	// Prose the model sometimes wraps around the object.
	cleanupRewrites = []struct {
		re   *regexp.Regexp
		with string
	}{
		{regexp.MustCompile(`(?i)^.*?here'?s the json:?\s*`), ""},
		{regexp.MustCompile(`(?i)^.*?here is the json:?\s*`), ""},
		{regexp.MustCompile("```(?:json)?"), ""},
		{regexp.MustCompile(`(?s)^[^{]*`), ""},
		{regexp.MustCompile(`(?s)[^}]*$`), ""},
	}
)

// Recover extracts the first structurally valid JSON object from a raw
// model response. It tries progressively more aggressive strategies and
// returns a *RecoveryError when all of them fail.
func Recover(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, recoveryError(raw)
	}

	unfenced := strings.TrimSpace(fenceLineRe.ReplaceAllString(trimmed, ""))
	if obj := validObject(unfenced); obj != nil {
		return obj, nil
	}

	if obj := firstToLastBrace(unfenced); obj != nil {
		return obj, nil
	}

	if match := objectRe.FindString(unfenced); match != "" {
		if obj := validObject(match); obj != nil {
			return obj, nil
		}
	}

	cleaned := unfenced
	for _, rw := range cleanupRewrites {
		cleaned = rw.re.ReplaceAllString(cleaned, rw.with)
	}
	if obj := validObject(strings.TrimSpace(cleaned)); obj != nil {
		return obj, nil
	}

	if obj := scanBalanced(unfenced); obj != nil {
		return obj, nil
	}

	return nil, recoveryError(raw)
}

// RecoverInto recovers a JSON object from raw and unmarshals it into v.
func RecoverInto(raw string, v any) error {
	obj, err := Recover(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(obj, v); err != nil {
		return fmt.Errorf("decode recovered JSON: %w", err)
	}
	return nil
}

func validObject(candidate string) []byte {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || candidate[0] != '{' {
		return nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return nil
	}
	return []byte(candidate)
}

func firstToLastBrace(s string) []byte {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil
	}
	return validObject(s[start : end+1])
}

// scanBalanced tries every '{' as a candidate start, walking forward
// with a string- and escape-aware depth counter until the span closes,
// and returns the first span that parses.
func scanBalanced(s string) []byte {
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		if end, ok := closeOfSpan(s, start); ok {
			if obj := validObject(s[start : end+1]); obj != nil {
				return obj
			}
		}
	}
	return nil
}

func closeOfSpan(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func recoveryError(raw string) *RecoveryError {
	head := raw
	if len(head) > recoverySnippetLen {
		head = head[:recoverySnippetLen]
	}
	tail := raw
	if len(tail) > recoverySnippetLen {
		tail = tail[len(tail)-recoverySnippetLen:]
	}
	return &RecoveryError{Head: head, Tail: tail}
}
