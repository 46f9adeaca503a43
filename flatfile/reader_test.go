package flatfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readAll(path string, opts Options) ([][]string, error) {
	var rows [][]string
	err := StreamRows(path, opts, func(_ int, row []string) error {
		rows = append(rows, append([]string(nil), row...))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func TestStreamRowsDecoding(t *testing.T) {
	t.Run("rows in file order", func(t *testing.T) {
		path := writeFile(t, "states.csv", "TN,Tamil Nadu\nKL,Kerala\nKA,Karnataka\n")

		rows, err := readAll(path, Options{})
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"TN", "Tamil Nadu"},
			{"KL", "Kerala"},
			{"KA", "Karnataka"},
		}, rows)
	})

	t.Run("predicate filters rows", func(t *testing.T) {
		path := writeFile(t, "districts.csv", "1,Chennai,TN\n2,Kochi,KL\n3,Madurai,TN\n")

		rows, err := readAll(path, Options{Keep: func(r []string) bool { return r[2] == "TN" }})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"1", "Chennai", "TN"}, {"3", "Madurai", "TN"}}, rows)
	})

	t.Run("custom delimiter keeps embedded commas", func(t *testing.T) {
		path := writeFile(t, "ngos.csv", `{"key_issues": "health, water"}<Chennai<TN`+"\n")

		rows, err := readAll(path, Options{Comma: '<', LazyQuotes: true})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, `{"key_issues": "health, water"}`, rows[0][0])
		assert.Equal(t, "Chennai", rows[0][1])
		assert.Equal(t, "TN", rows[0][2])
	})

	t.Run("quoted field with doubled quotes", func(t *testing.T) {
		path := writeFile(t, "ngos.csv", `"{""a"": 1}"<D<S`+"\n")

		rows, err := readAll(path, Options{Comma: '<'})
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, rows[0][0])
	})

	t.Run("ragged rows are returned as-is", func(t *testing.T) {
		path := writeFile(t, "sectors.csv", "1,Health\n2\n")

		rows, err := readAll(path, Options{})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"1", "Health"}, {"2"}}, rows)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")

		rows, err := readAll(path, Options{})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readAll(filepath.Join(t.TempDir(), "nope.csv"), Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("bare quote is a parse error unless lazy", func(t *testing.T) {
		path := writeFile(t, "bad.csv", "1,ok\n2,ab\"c\n")

		_, err := readAll(path, Options{})
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 2, perr.Line)

		rows, err := readAll(path, Options{LazyQuotes: true})
		require.NoError(t, err)
		assert.Equal(t, `ab"c`, rows[1][1])
	})

	t.Run("unterminated quote is a parse error", func(t *testing.T) {
		path := writeFile(t, "bad.csv", "1,ok\n2,\"broken\n")

		_, err := readAll(path, Options{})
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, path, perr.Path)
		assert.Positive(t, perr.Line)
	})
}

func TestStreamRowsIsIdempotent(t *testing.T) {
	path := writeFile(t, "states.csv", "TN,Tamil Nadu\nKL,Kerala\n")

	first, err := readAll(path, Options{})
	require.NoError(t, err)
	second, err := readAll(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStreamRows(t *testing.T) {
	path := writeFile(t, "ngos.csv", "a<1<X\nb<2<Y\n")

	var got []string
	err := StreamRows(path, Options{Comma: '<'}, func(line int, row []string) error {
		got = append(got, strings.Join(row, "|"))
		assert.Equal(t, len(got), line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a|1|X", "b|2|Y"}, got)

	t.Run("line is the physical line after filtering", func(t *testing.T) {
		path := writeFile(t, "districts.csv", "1,Kochi,KL\n2,\"Chennai\nNorth\",TN\n3,Madurai,TN\n")

		var lines []int
		err := StreamRows(path, Options{Keep: func(r []string) bool { return r[2] == "TN" }}, func(line int, _ []string) error {
			lines = append(lines, line)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4}, lines)
	})

	t.Run("callback error stops the stream", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		err := StreamRows(path, Options{Comma: '<'}, func(int, []string) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})
}
