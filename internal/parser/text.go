package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/dgallion1/orgnav/internal/doctree"
)

// TextParser handles org files and plain text. Lines are kept verbatim.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return &doctree.Document{Title: baseTitle(filename), Lines: lines}, nil
}

// readLines splits r into lines without terminators. A final newline does
// not start an extra line. Lines may be of any length.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
