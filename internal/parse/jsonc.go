package parse

import (
	"encoding/json"
	"regexp"
	"strings"
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// CleanJSONC strips // and /* */ comments and trailing commas from a
// JSON-with-comments document so the result can be handed to encoding/json.
// Comment markers inside string literals are left alone. Comments are
// removed outright rather than blanked; a line comment keeps its
// terminating newline so content never shifts across lines.
func CleanJSONC(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]

		if inString {
			out.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				out.WriteByte(src[i])
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				out.WriteByte('\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			// An unterminated block comment consumes to end of input.
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i++
		default:
			out.WriteByte(c)
		}
	}

	return trailingComma.ReplaceAllString(out.String(), "$1")
}

// DecodeJSONC cleans src and unmarshals the result into v. Decode errors
// from the cleaned text propagate unchanged.
func DecodeJSONC(src []byte, v interface{}) error {
	return json.Unmarshal([]byte(CleanJSONC(string(src))), v)
}
