package language

import "strings"

// NormalizeName normalizes a language display name for comparison
// ("french", " FRENCH " and "French" all resolve to "french").
func NormalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// DisplayName returns the canonical display form of a language name
// ("french" becomes "French", "chinese (simplified)" keeps its suffix).
func DisplayName(raw string) string {
	normalized := NormalizeName(raw)
	if normalized == "" {
		return ""
	}

	parts := strings.Fields(normalized)
	for i, part := range parts {
		if len(part) == 0 {
			continue
		}
		first := strings.ToUpper(part[:1])
		if strings.HasPrefix(part, "(") && len(part) > 1 {
			first = "(" + strings.ToUpper(part[1:2])
			parts[i] = first + part[2:]
			continue
		}
		parts[i] = first + part[1:]
	}
	return strings.Join(parts, " ")
}

// NormalizeCode returns the primary language subtag (for example, "en" from "en-US").
func NormalizeCode(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	if dash := strings.IndexByte(trimmed, '-'); dash >= 0 {
		trimmed = trimmed[:dash]
	}
	if !isAlphaLower(trimmed) {
		return ""
	}
	return trimmed
}

func isAlphaLower(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
