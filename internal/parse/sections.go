package parse

import (
	"fmt"
	"sort"
	"strings"
)

// Document is a minimal sectioned key/value file: an ordered list of
// [section] headers, each holding key = value assignments. Values are
// limited to double-quoted strings, arrays of double-quoted strings, and
// single-level inline tables of string pairs. This covers only the dialect
// Codex-style configs use; richer TOML (multi-line strings, typed scalars,
// nested tables) is out of subset and round-trips as opaque raw text.
type Document struct {
	// Preamble holds the verbatim lines before the first [section] header:
	// top-level keys, comments and blank lines all re-encode untouched.
	Preamble []string

	Sections []*Section
}

// Section is one [name] block. Key order is preserved for re-encoding.
type Section struct {
	Name string

	keys   []string
	values map[string]interface{}

	// raw holds the section's verbatim input lines, header included.
	// Sections built in memory have none and render from their keys.
	raw []string
}

// RawValue is an unquoted scalar (integer, boolean, date) kept verbatim so
// re-encoding a section we did not touch does not change its meaning.
type RawValue string

// NewSection creates an empty section.
func NewSection(name string) *Section {
	return &Section{
		Name:   name,
		values: make(map[string]interface{}),
	}
}

// Set assigns a value, appending the key on first assignment. Editing a
// parsed section drops its verbatim lines; it re-encodes from its keys.
func (s *Section) Set(key string, value interface{}) {
	s.raw = nil
	s.set(key, value)
}

func (s *Section) set(key string, value interface{}) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Keys returns the section's keys in assignment order.
func (s *Section) Keys() []string {
	return s.keys
}

// GetString returns the string value for key, or "" when the key is absent
// or holds a different kind of value. Unquoted scalars count as strings.
func (s *Section) GetString(key string) string {
	switch value := s.values[key].(type) {
	case string:
		return value
	case RawValue:
		return string(value)
	default:
		return ""
	}
}

// GetStringSlice returns the array value for key, or nil.
func (s *Section) GetStringSlice(key string) []string {
	value, _ := s.values[key].([]string)
	return value
}

// GetStringMap returns the inline-table value for key, or nil.
func (s *Section) GetStringMap(key string) map[string]string {
	value, _ := s.values[key].(map[string]string)
	return value
}

// ParseSections reads text line by line. [name] opens a section and
// key = value assigns into the open section; blank lines, # comments and
// out-of-subset lines carry no values. Every input line is also retained
// verbatim, on the document's preamble before the first header and on the
// owning section after it, so untouched content re-encodes byte for byte.
func ParseSections(text string) *Document {
	doc := &Document{}

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var current *Section
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			current = NewSection(name)
			current.raw = []string{line}
			doc.Sections = append(doc.Sections, current)
			continue
		}

		if current == nil {
			doc.Preamble = append(doc.Preamble, line)
			continue
		}
		current.raw = append(current.raw, line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		eq := strings.Index(trimmed, "=")
		if eq <= 0 {
			continue
		}

		key := strings.TrimSpace(trimmed[:eq])
		if key == "" {
			continue
		}
		current.set(key, parseValue(strings.TrimSpace(trimmed[eq+1:])))
	}

	return doc
}

// parseValue dispatches on the first character: quoted string, array,
// inline table, or raw scalar.
func parseValue(raw string) interface{} {
	switch {
	case len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"':
		return raw[1 : len(raw)-1]
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		return parseArray(raw[1 : len(raw)-1])
	case strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}"):
		return parseInlineTable(raw[1 : len(raw)-1])
	default:
		return RawValue(raw)
	}
}

// parseArray collects the double-quoted elements of an array body. Commas
// and whitespace outside string state are separators, so a comma inside a
// quoted element never splits it.
func parseArray(inner string) []string {
	var items []string
	var current strings.Builder

	inString := false
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if inString {
			if c == '"' {
				inString = false
				items = append(items, current.String())
				current.Reset()
				continue
			}
			current.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
		}
	}

	return items
}

// parseInlineTable splits an inline-table body on top-level commas and
// matches each pair against optionally-quoted-key = "quoted-value".
func parseInlineTable(inner string) map[string]string {
	table := make(map[string]string)

	for _, pair := range splitTopLevel(inner, ',') {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		key = strings.TrimPrefix(key, `"`)
		key = strings.TrimSuffix(key, `"`)

		value := strings.TrimSpace(parts[1])
		if key == "" || len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
			continue
		}
		table[key] = value[1 : len(value)-1]
	}

	return table
}

// splitTopLevel splits s on sep, ignoring separators inside double quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var current strings.Builder

	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inString = !inString
		}
		if c == sep && !inString {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(c)
	}
	if strings.TrimSpace(current.String()) != "" {
		parts = append(parts, current.String())
	}

	return parts
}

// Encode renders the document back to text. The preamble and parsed
// sections are emitted verbatim; sections built in memory render as a
// [name] header followed by their key = value lines, separated from any
// preceding content by a blank line.
func (d *Document) Encode() string {
	var out strings.Builder

	for _, line := range d.Preamble {
		out.WriteString(line)
		out.WriteString("\n")
	}

	for _, section := range d.Sections {
		if section.raw != nil {
			for _, line := range section.raw {
				out.WriteString(line)
				out.WriteString("\n")
			}
			continue
		}

		if text := out.String(); text != "" && !strings.HasSuffix(text, "\n\n") {
			out.WriteString("\n")
		}
		fmt.Fprintf(&out, "[%s]\n", section.Name)
		for _, key := range section.keys {
			fmt.Fprintf(&out, "%s = %s\n", key, encodeValue(section.values[key]))
		}
	}

	return out.String()
}

func encodeValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case RawValue:
		return string(v)
	case []string:
		quoted := make([]string, len(v))
		for i, item := range v {
			quoted[i] = fmt.Sprintf("%q", item)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case map[string]string:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, key := range keys {
			pairs[i] = fmt.Sprintf("%q = %q", key, v[key])
		}
		return "{ " + strings.Join(pairs, ", ") + " }"
	default:
		return fmt.Sprintf("%v", v)
	}
}
