package topology

import (
	"regexp"
	"strings"

	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
)

var (
	isoPattern    = regexp.MustCompile(`(?i)\bISO\s*([0-9]+)\b`)
	isoSuffixExpr = regexp.MustCompile(`(?i)\s*[-–—]\s*ISO\s*\d+\s*$`)
)

// Default classification settings.
var (
	DefaultAllowedISO       = []string{"0", "5", "7", "8"}
	DefaultCorridorKeywords = []string{"corridor", "hall", "lobby", "vestibule"}
)

// DefaultISO is the code given to spaces without a recognised ISO token.
const DefaultISO = "0"

// Classifier derives classification codes and display names from raw space
// names.
type Classifier struct {
	allowed    map[string]struct{}
	defaultISO string
	keywords   []string
}

// NewClassifier builds a classifier. Empty arguments select the defaults.
func NewClassifier(allowed []string, defaultISO string, corridorKeywords []string) *Classifier {
	if len(allowed) == 0 {
		allowed = DefaultAllowedISO
	}
	if defaultISO == "" {
		defaultISO = DefaultISO
	}
	if len(corridorKeywords) == 0 {
		corridorKeywords = DefaultCorridorKeywords
	}

	c := &Classifier{
		allowed:    make(map[string]struct{}, len(allowed)),
		defaultISO: defaultISO,
		keywords:   make([]string, 0, len(corridorKeywords)),
	}
	for _, code := range allowed {
		c.allowed[code] = struct{}{}
	}
	for _, kw := range corridorKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			c.keywords = append(c.keywords, kw)
		}
	}
	return c
}

// DefaultClassifier returns a classifier with the default allow-list and
// corridor keywords.
func DefaultClassifier() *Classifier {
	return NewClassifier(nil, "", nil)
}

// ISO extracts the classification code from a raw name. Codes outside the
// allow-list, and names without a token, yield the default code.
func (c *Classifier) ISO(name string) string {
	m := isoPattern.FindStringSubmatch(name)
	if m == nil {
		return c.defaultISO
	}
	code := strings.TrimSpace(m[1])
	if _, ok := c.allowed[code]; ok {
		return code
	}
	return c.defaultISO
}

// Allowed reports whether code is in the allow-list.
func (c *Classifier) Allowed(code string) bool {
	_, ok := c.allowed[code]
	return ok
}

// StripISO removes a trailing "- ISO n" suffix. If nothing would be left the
// trimmed original is returned.
func StripISO(name string) string {
	if name == "" {
		return ""
	}
	cleaned := strings.TrimSpace(isoSuffixExpr.ReplaceAllString(name, ""))
	if cleaned == "" {
		return strings.TrimSpace(name)
	}
	return cleaned
}

// IsCorridor reports whether a display name looks like a circulation space.
func (c *Classifier) IsCorridor(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// RawSpaceName resolves a space's name from LongName, then Name, then a
// label synthesized from the first six characters of its GlobalId.
func RawSpaceName(e *ifc.Entity) string {
	for _, field := range []string{"LongName", "Name"} {
		if s, ok := e.String(field); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return "Space-" + prefix(e.GlobalID(), 6)
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
