package document

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

var fencePattern = regexp.MustCompile("(?m)^```([a-zA-Z0-9_+-]*)\\s*$")

// Meta is the structured metadata at the beginning of a notebook file.
type Meta struct {
	Type     string   `yaml:"type,omitempty"`
	Title    string   `yaml:"title,omitempty"`
	Tags     []string `yaml:"tags,flow,omitempty"`
	Created  string   `yaml:"created,omitempty"`
	Modified string   `yaml:"modified,omitempty"`
}

// Parse decodes notebook file content into a notebook model. Fenced code
// blocks become code cells; the prose between them becomes markup cells.
// Content without frontmatter parses as an untyped notebook.
func Parse(uri, content string) (*Notebook, error) {
	meta := &Meta{}
	body := content

	if matches := frontmatterPattern.FindStringSubmatch(content); len(matches) == 3 {
		if err := yaml.Unmarshal([]byte(matches[1]), meta); err != nil {
			return nil, fmt.Errorf("parse notebook frontmatter: %w", err)
		}
		body = matches[2]
	}

	nb := NewNotebook(uri, meta.Type)
	nb.Title = meta.Title

	splitCells(nb, body)
	return nb, nil
}

// splitCells walks the body line by line, collecting prose into markup
// cells and fenced blocks into code cells.
func splitCells(nb *Notebook, body string) {
	lines := strings.Split(body, "\n")

	var buf []string
	var codeLang string
	inCode := false

	flushMarkup := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = nil
		if text != "" {
			nb.AppendCell(KindMarkup, "markdown", text)
		}
	}

	for _, line := range lines {
		m := fencePattern.FindStringSubmatch(line)
		switch {
		case m != nil && !inCode:
			flushMarkup()
			inCode = true
			codeLang = m[1]
		case m != nil && inCode && m[1] == "":
			nb.AppendCell(KindCode, codeLang, strings.Join(buf, "\n"))
			buf = nil
			inCode = false
		default:
			buf = append(buf, line)
		}
	}

	if inCode {
		// Unterminated fence, keep the remainder as a code cell.
		nb.AppendCell(KindCode, codeLang, strings.Join(buf, "\n"))
	} else {
		flushMarkup()
	}
}

// Build encodes the notebook model back to file content.
func Build(nb *Notebook) (string, error) {
	var sb strings.Builder

	meta := Meta{Type: nb.Type, Title: nb.Title}
	if meta.Type != "" || meta.Title != "" {
		out, err := yaml.Marshal(&meta)
		if err != nil {
			return "", fmt.Errorf("marshal notebook frontmatter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(out)
		sb.WriteString("---\n\n")
	}

	for i, c := range nb.Cells() {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch c.Kind {
		case KindCode:
			sb.WriteString("```")
			sb.WriteString(c.Language)
			sb.WriteString("\n")
			sb.WriteString(c.Source)
			sb.WriteString("\n```\n")
		default:
			sb.WriteString(c.Source)
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
