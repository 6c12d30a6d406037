package matchmatrix_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/primecluster/matchmatrix"
)

func TestParseGrid(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"Hashes", "##..\n####\n.###\n.###\n", "##..\n####\n.###\n.###\n"},
		{"Digits", "1100\n1111\n0111\n0111", "##..\n####\n.###\n.###\n"},
		{"CommaSeparated", "1, 1, 0, 0\n1, 1, 1, 1\n0, 1, 1, 1\n0, 1, 1, 1\n", "##..\n####\n.###\n.###\n"},
		{"CommentsAndBlanks", "// sample\n\n  ##..\n####\n\n.###\n.###\n", "##..\n####\n.###\n.###\n"},
		{"Empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := matchmatrix.ParseGrid(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.String())
		})
	}
}

func TestParseGrid_Errors(t *testing.T) {
	_, err := matchmatrix.ParseGrid(strings.NewReader("##\n#x\n"))
	assert.ErrorIs(t, err, matchmatrix.ErrBadCell)
	assert.Contains(t, err.Error(), "line 2 col 2")

	_, err = matchmatrix.ParseGrid(strings.NewReader("###\n###\n"))
	assert.ErrorIs(t, err, matchmatrix.ErrNonSquare)

	_, err = matchmatrix.ParseGrid(strings.NewReader("#.\n##\n"), matchmatrix.WithSymmetryCheck())
	assert.ErrorIs(t, err, matchmatrix.ErrAsymmetric)
}

func TestParseGridFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.txt")
	require.NoError(t, os.WriteFile(path, []byte("###\n###\n###\n"), 0o600))

	m, err := matchmatrix.ParseGridFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Size())

	_, err = matchmatrix.ParseGridFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("#?\n##\n"), 0o600))
	_, err = matchmatrix.ParseGridFile(bad)
	assert.ErrorIs(t, err, matchmatrix.ErrBadCell)
	assert.Contains(t, err.Error(), "bad.txt")
}
