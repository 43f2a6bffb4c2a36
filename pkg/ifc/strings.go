package ifc

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// decodeString resolves the ISO 10303-21 control directives inside a string
// literal: \\, \X\hh, \S\c, \P?\ and the \X2\ / \X4\ Unicode runs.
// Malformed directives are kept verbatim.
func decodeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, `\\`):
			b.WriteByte('\\')
			i += 2
		case strings.HasPrefix(rest, `\X2\`), strings.HasPrefix(rest, `\X4\`):
			width := 4
			if rest[2] == '4' {
				width = 8
			}
			end := strings.Index(rest[4:], `\X0\`)
			if end < 0 {
				b.WriteString(rest)
				return b.String()
			}
			b.WriteString(decodeHexRun(rest[4:4+end], width))
			i += 4 + end + 4
		case strings.HasPrefix(rest, `\X\`) && len(rest) >= 5:
			if v, err := strconv.ParseUint(rest[3:5], 16, 8); err == nil {
				b.WriteRune(rune(v))
				i += 5
				continue
			}
			b.WriteByte('\\')
			i++
		case strings.HasPrefix(rest, `\S\`) && len(rest) >= 4:
			b.WriteRune(rune(rest[3]) + 128)
			i += 4
		case strings.HasPrefix(rest, `\P`) && len(rest) >= 4 && rest[3] == '\\':
			i += 4
		default:
			b.WriteByte('\\')
			i++
		}
	}
	return b.String()
}

// decodeHexRun decodes UTF-16 (width 4) or UCS-4 (width 8) hex code units.
func decodeHexRun(hex string, width int) string {
	if width == 8 {
		var b strings.Builder
		for j := 0; j+8 <= len(hex); j += 8 {
			v, err := strconv.ParseUint(hex[j:j+8], 16, 32)
			if err != nil {
				return hex
			}
			b.WriteRune(rune(v))
		}
		return b.String()
	}

	units := make([]uint16, 0, len(hex)/4)
	for j := 0; j+4 <= len(hex); j += 4 {
		v, err := strconv.ParseUint(hex[j:j+4], 16, 16)
		if err != nil {
			return hex
		}
		units = append(units, uint16(v))
	}
	return string(utf16.Decode(units))
}
