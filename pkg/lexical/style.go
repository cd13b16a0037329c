package lexical

import (
	"sort"
	"strings"
)

// StyleMap represents parsed CSS styles
type StyleMap map[string]string

// ParseStyle parses a CSS style string into a map
// Example: "color: #F97316; font-size: 12pt;"
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	parts := strings.Split(styleStr, ";")
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(kv[0])
			v := strings.TrimSpace(kv[1])
			if k != "" && v != "" {
				styles[k] = v
			}
		}
	}
	return styles
}

// String renders the map with keys sorted, so equal maps give equal strings.
func (s StyleMap) String() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + s[k]
	}
	return strings.Join(parts, "; ") + ";"
}

// BuildAnnotatedOpenTag creates an HTML span carrying the styles that matter
// in a preview. Returns empty string if no relevant styles found
func (s StyleMap) BuildAnnotatedOpenTag() string {
	var relevant []string

	whitelist := []string{"color", "background-color", "font-size"}

	for _, k := range whitelist {
		if v, ok := s[k]; ok {
			relevant = append(relevant, k+":"+v)
		}
	}

	if len(relevant) == 0 {
		return ""
	}

	return "<span style=\"" + strings.Join(relevant, "; ") + "\">"
}
