// Package meta extracts note metadata from the leading lines of an org file
// with regular expressions, without running the full parser.
package meta

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/orgparse/internal/grammar"
)

var (
	titleRe   = regexp.MustCompile(`(?im)^#\+title:[ \t]*(.*?)[ \t]*\r?$`)
	tagsRe    = regexp.MustCompile(`(?im)^#\+(?:file)?tags:[ \t]*(.*?)[ \t]*\r?$`)
	idRe      = regexp.MustCompile(`(?im)^[ \t]*:ID:[ \t]*(\S+)`)
	refsRe    = regexp.MustCompile(`(?im)^[ \t]*:ROAM_REFS:[ \t]*(.*?)[ \t]*\r?$`)
	aliasesRe = regexp.MustCompile(`(?im)^[ \t]*:ROAM_ALIASES:[ \t]*(.*?)[ \t]*\r?$`)
	quotedRe  = regexp.MustCompile(`"([^"]+)"`)
)

// Metadata is what the preamble says about a note.
type Metadata struct {
	Title   string   `yaml:"title,omitempty"`
	ID      string   `yaml:"id,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Refs    []string `yaml:"refs,omitempty"`
}

// IsPreambleLine reports whether line belongs to the preamble: it is blank
// or starts with '#' or ':', and it does not open a block.
func IsPreambleLine(line string) bool {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" {
		return true
	}
	if len(line) >= 7 && strings.EqualFold(line[:7], "#+begin") {
		return false
	}
	return line[0] == '#' || line[0] == ':'
}

// Head returns the leading run of preamble lines of text, line breaks
// included.
func Head(text string) string {
	end := 0
	for end < len(text) {
		next := len(text)
		if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
			next = end + i + 1
		}
		if !IsPreambleLine(strings.TrimSuffix(text[end:next], "\n")) {
			break
		}
		end = next
	}
	return text[:end]
}

// Extract reads metadata from the preamble of text.
func Extract(text string) Metadata {
	head := Head(text)
	var m Metadata
	if s := titleRe.FindStringSubmatch(head); s != nil {
		m.Title = s[1]
	}
	if s := idRe.FindStringSubmatch(head); s != nil {
		m.ID = s[1]
	}
	if s := tagsRe.FindStringSubmatch(head); s != nil {
		m.Tags = grammar.SplitTags(s[1])
	}
	if s := refsRe.FindStringSubmatch(head); s != nil {
		m.Refs = strings.Fields(s[1])
	}
	if s := aliasesRe.FindStringSubmatch(head); s != nil {
		for _, q := range quotedRe.FindAllStringSubmatch(s[1], -1) {
			m.Aliases = append(m.Aliases, q[1])
		}
	}
	return m
}

// ValidID reports whether the ID is a well-formed UUID.
func (m Metadata) ValidID() bool {
	if m.ID == "" {
		return false
	}
	_, err := uuid.Parse(m.ID)
	return err == nil
}

// YAML renders the metadata as a YAML document.
func (m Metadata) YAML() ([]byte, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return out, nil
}
