// Package document loads study material files into plain text for topic
// extraction.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Document is the loaded text of one study material file.
type Document struct {
	Name string
	Text string
}

// Reader parses one on-disk format into a Document.
type Reader interface {
	Read(path string) (Document, error)
}

// ReaderFor picks a reader by file extension. Unknown extensions are treated
// as plain text.
func ReaderFor(path string) Reader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return MarkdownReader{}
	default:
		return TextReader{}
	}
}

// TextReader loads a file verbatim.
type TextReader struct{}

func (TextReader) Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("os.ReadFile() > %w", err)
	}
	return Document{
		Name: filepath.Base(path),
		Text: string(data),
	}, nil
}

var (
	codeFencePattern = regexp.MustCompile("(?s)```.*?```")
	linkPattern      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	emphasisPattern  = regexp.MustCompile(`(\*{1,2}|_{1,2})([^*_]+)(\*{1,2}|_{1,2})`)
)

// MarkdownReader loads a markdown file and strips formatting that would
// confuse line-based extraction. ATX headings become "Section:" lines so
// heading heuristics still see them.
type MarkdownReader struct{}

func (MarkdownReader) Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("os.ReadFile() > %w", err)
	}

	text := codeFencePattern.ReplaceAllString(string(data), "")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = emphasisPattern.ReplaceAllString(text, "$2")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if title != "" {
				lines = append(lines, "Section: "+title)
			}
			continue
		}
		lines = append(lines, line)
	}

	return Document{
		Name: filepath.Base(path),
		Text: strings.Join(lines, "\n"),
	}, nil
}
