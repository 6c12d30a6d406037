// SPDX-License-Identifier: MIT

package matchmatrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Grid cell characters. '1' and '0' are accepted as aliases on input.
const (
	cellMatch   = '#'
	cellNoMatch = '.'
)

// commentPrefix starts a line ignored by ParseGrid.
const commentPrefix = "//"

// ParseGrid reads one matrix row per line. Cells are '#' or '1' for a match
// and '.' or '0' for no match; spaces, tabs and commas between cells are
// ignored, as are blank lines and lines starting with "//".
//
// Errors: ErrBadCell (with line/column), ErrNonSquare.
func ParseGrid(r io.Reader, opts ...Option) (*Dense, error) {
	var rows [][]bool
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, commentPrefix) {
			continue
		}
		row := make([]bool, 0, len(text))
		for col, ch := range text {
			switch ch {
			case cellMatch, '1':
				row = append(row, true)
			case cellNoMatch, '0':
				row = append(row, false)
			case ' ', '\t', ',':
			default:
				return nil, fmt.Errorf("ParseGrid: line %d col %d %q: %w", line, col+1, ch, ErrBadCell)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ParseGrid: %w", err)
	}

	return FromBools(rows, opts...)
}

// ParseGridFile opens path and parses it with ParseGrid.
func ParseGridFile(path string, opts ...Option) (*Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseGrid(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
