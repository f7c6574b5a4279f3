package parse

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseSections(t *testing.T) {
	text := `# codex config
model = "ignored, no section open yet"

[general]
model = "gpt-4"
approval = untrusted

[mcp_servers.github]
command = "npx"
args = ["-y", "@modelcontextprotocol/server-github"]
env = { GITHUB_TOKEN = "abc", "quoted key" = "v" }
`

	doc := ParseSections(text)

	if len(doc.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(doc.Sections))
	}

	t.Run("Keys before any section stay in the preamble", func(t *testing.T) {
		if doc.Sections[0].Name != "general" {
			t.Errorf("Expected first section 'general', got '%s'", doc.Sections[0].Name)
		}
		if len(doc.Preamble) == 0 {
			t.Error("Expected pre-section lines to be retained")
		}
	})

	t.Run("String values", func(t *testing.T) {
		if got := doc.Sections[0].GetString("model"); got != "gpt-4" {
			t.Errorf("Expected 'gpt-4', got '%s'", got)
		}
	})

	t.Run("Raw scalars come back as strings", func(t *testing.T) {
		if got := doc.Sections[0].GetString("approval"); got != "untrusted" {
			t.Errorf("Expected 'untrusted', got '%s'", got)
		}
	})

	t.Run("Array values", func(t *testing.T) {
		want := []string{"-y", "@modelcontextprotocol/server-github"}
		if got := doc.Sections[1].GetStringSlice("args"); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("Inline table values", func(t *testing.T) {
		env := doc.Sections[1].GetStringMap("env")
		if env["GITHUB_TOKEN"] != "abc" {
			t.Errorf("Expected env GITHUB_TOKEN=abc, got %v", env)
		}
		if env["quoted key"] != "v" {
			t.Errorf("Expected quoted key preserved, got %v", env)
		}
	})

	t.Run("Dotted section names stay flat", func(t *testing.T) {
		if doc.Sections[1].Name != "mcp_servers.github" {
			t.Errorf("Unexpected section name '%s'", doc.Sections[1].Name)
		}
	})
}

func TestParseArrayCommasInsideStrings(t *testing.T) {
	doc := ParseSections("[s]\nargs = [\"a,b\", \"c\"]\n")
	want := []string{"a,b", "c"}
	if got := doc.Sections[0].GetStringSlice("args"); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEncode(t *testing.T) {
	t.Run("Raw scalars are kept verbatim", func(t *testing.T) {
		text := "[general]\napproval = true\ntimeout = 30\n"
		if got := ParseSections(text).Encode(); got != text {
			t.Errorf("Raw values changed on re-encode:\n%s", got)
		}
	})

	t.Run("Preamble and comments round-trip verbatim", func(t *testing.T) {
		text := "# header comment\nmodel = \"o3\"\n\n[general]\n# inner note\napproval = true\n"
		if got := ParseSections(text).Encode(); got != text {
			t.Errorf("Document changed on re-encode:\n%s", got)
		}
	})

	t.Run("Dropping a parsed section keeps its neighbors intact", func(t *testing.T) {
		text := "top = \"kept\"\n\n[a]\n# note\nk = \"v\"\n\n[b]\nk = \"v\"\n"
		doc := ParseSections(text)
		doc.Sections = doc.Sections[:1]
		want := "top = \"kept\"\n\n[a]\n# note\nk = \"v\"\n\n"
		if got := doc.Encode(); got != want {
			t.Errorf("Expected:\n%s\nGot:\n%s", want, got)
		}
	})

	t.Run("Sections are separated by a blank line", func(t *testing.T) {
		doc := &Document{}
		first := NewSection("a")
		first.Set("k", "v")
		second := NewSection("b")
		second.Set("k", []string{"x", "y"})
		doc.Sections = append(doc.Sections, first, second)

		want := "[a]\nk = \"v\"\n\n[b]\nk = [\"x\", \"y\"]\n"
		if got := doc.Encode(); got != want {
			t.Errorf("Expected:\n%s\nGot:\n%s", want, got)
		}
	})

	t.Run("Round trip preserves structure", func(t *testing.T) {
		doc := &Document{}
		section := NewSection("mcp_servers.fs")
		section.Set("command", "npx")
		section.Set("args", []string{"-y", "server-fs"})
		section.Set("env", map[string]string{"A": "1", "B": "2"})
		doc.Sections = append(doc.Sections, section)

		parsed := ParseSections(doc.Encode())
		if len(parsed.Sections) != 1 {
			t.Fatalf("Expected 1 section, got %d", len(parsed.Sections))
		}
		got := parsed.Sections[0]
		if got.GetString("command") != "npx" {
			t.Errorf("command lost: %v", got.GetString("command"))
		}
		if !reflect.DeepEqual(got.GetStringSlice("args"), []string{"-y", "server-fs"}) {
			t.Errorf("args lost: %v", got.GetStringSlice("args"))
		}
		if !reflect.DeepEqual(got.GetStringMap("env"), map[string]string{"A": "1", "B": "2"}) {
			t.Errorf("env lost: %v", got.GetStringMap("env"))
		}
	})

	t.Run("Inline table keys are sorted for stable output", func(t *testing.T) {
		section := NewSection("s")
		section.Set("env", map[string]string{"B": "2", "A": "1"})
		doc := &Document{Sections: []*Section{section}}
		if !strings.Contains(doc.Encode(), `env = { "A" = "1", "B" = "2" }`) {
			t.Errorf("Unexpected encoding:\n%s", doc.Encode())
		}
	})
}
