package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumnCandidatePriority(t *testing.T) {
	header := []string{"순번", "이름", "학과"}
	assert.Equal(t, 1, ResolveColumn(header, "성명", "이름"))
}

func TestResolveColumnFirstCandidateWins(t *testing.T) {
	// Both candidates match; the earlier candidate's column is taken even
	// though the other candidate appears in an earlier column.
	header := []string{"이름", "성명"}
	assert.Equal(t, 1, ResolveColumn(header, "성명", "이름"))
}

func TestResolveColumnNotFound(t *testing.T) {
	assert.Equal(t, ColumnNotFound, ResolveColumn([]string{"순번", "학과"}, "성명"))
}

func TestResolveColumnIgnoresSpacing(t *testing.T) {
	assert.Equal(t, 0, ResolveColumn([]string{"성  명"}, "성명"))
}

func TestResolveColumns(t *testing.T) {
	header := []string{"대학", "소속", "성명"}
	cols := ResolveColumns(header, map[string][]string{
		"college": {"대학"},
		"name":    {"성명", "이름"},
		"salary":  {"호봉"},
	})
	assert.Equal(t, 0, cols["college"])
	assert.Equal(t, 2, cols["name"])
	assert.Equal(t, ColumnNotFound, cols["salary"])
}

func TestGridCellToleratesMissingColumn(t *testing.T) {
	g := Grid{{"a", "b"}}
	assert.Equal(t, "", g.Cell(0, ColumnNotFound))
	assert.Equal(t, "", g.Cell(0, 9))
	assert.Equal(t, "", g.Cell(5, 0))
	assert.Equal(t, "b", g.Cell(0, 1))
}
