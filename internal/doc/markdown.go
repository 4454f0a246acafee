package doc

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MarkdownFormat implements Format for Markdown files.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Load(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Paginate(filepath.Base(filename), strings.Split(string(data), "\n"), DefaultPageLines), nil
}

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// TOC extracts the table of contents by parsing headers. Each entry
// points at the page its header lands on under default pagination.
func (f *MarkdownFormat) TOC(filename string) ([]TOCEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []TOCEntry
	var lineNum int

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if match := headerRegex.FindStringSubmatch(line); match != nil {
			entries = append(entries, TOCEntry{
				Title: strings.TrimSpace(match[2]),
				Page:  lineNum/DefaultPageLines + 1,
				Level: len(match[1]) - 1, // h1 = level 0, h2 = level 1, etc.
			})
		}
		lineNum++
	}

	return entries, scanner.Err()
}
