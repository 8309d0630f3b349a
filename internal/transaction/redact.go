package transaction

import (
	"encoding/json"
	"net/url"
	"strings"
)

const redactedValue = "[REDACTED]"

var sensitiveKeyParts = []string{"token", "secret", "password", "pin", "authorization"}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// redactBody renders a body for the diagnostic log with credentials masked.
// JSON and form bodies are walked, anything else is logged as is.
func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err == nil {
		masked, err := json.Marshal(redactValue(doc))
		if err == nil {
			return string(masked)
		}
	}

	if form, err := url.ParseQuery(string(body)); err == nil && len(form) > 0 && strings.Contains(string(body), "=") && !strings.ContainsAny(string(body), "{}[] \n") {
		for key := range form {
			if isSensitiveKey(key) {
				form.Set(key, redactedValue)
			}
		}
		return form.Encode()
	}

	return string(body)
}

func redactValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			if isSensitiveKey(key) {
				out[key] = redactedValue
				continue
			}
			out[key] = redactValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, nested := range typed {
			out[i] = redactValue(nested)
		}
		return out
	default:
		return value
	}
}

// redactURL masks sensitive query parameters, e.g. the token of a revoke call.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.RawQuery == "" {
		return raw
	}

	query := parsed.Query()
	changed := false
	for key := range query {
		if isSensitiveKey(key) {
			query.Set(key, redactedValue)
			changed = true
		}
	}
	if !changed {
		return raw
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}
