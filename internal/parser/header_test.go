package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateHeaderFindsMatchingRow(t *testing.T) {
	grid := Grid{
		{"2025학년도 교원현황"},
		{"", "작성일: 2025.03.01"},
		{"순번", "대학", "소속", "성명", "직급", "재직구분"},
		{"1", "무도대학", "유도학과", "홍길동", "교수", "재직"},
	}
	scan := LocateHeader(grid, facultyHeaderKeywords, 3, 0)
	assert.Equal(t, 2, scan.Row)
	assert.False(t, scan.FellBack)
	assert.GreaterOrEqual(t, scan.Matched, 3)
}

func TestLocateHeaderToleratesPaddedLabels(t *testing.T) {
	grid := Grid{
		{"순번", "성  명", "직 급", "소 속"},
	}
	scan := LocateHeader(grid, facultyHeaderKeywords, 3, 0)
	assert.Equal(t, 0, scan.Row)
	assert.False(t, scan.FellBack)
}

func TestLocateHeaderRequiresKeywordWithinOneCell(t *testing.T) {
	// "성" + "명..." would form 성명 across the boundary; that must not count.
	grid := Grid{
		{"성", "명단 목록", "직", "급여 내역", "소", "속기록"},
		{"순번", "성명", "직급", "소속"},
	}
	scan := LocateHeader(grid, facultyHeaderKeywords, 3, 0)
	assert.Equal(t, 1, scan.Row)
	assert.False(t, scan.FellBack)
}

func TestLocateHeaderFallsBack(t *testing.T) {
	grid := Grid{
		{"아무 관련 없는 내용"},
		{"또 다른 행"},
	}
	scan := LocateHeader(grid, facultyHeaderKeywords, 3, 3)
	assert.Equal(t, 3, scan.Row)
	assert.True(t, scan.FellBack)
}

func TestLocateHeaderIgnoresDeepRows(t *testing.T) {
	grid := make(Grid, 15)
	grid[12] = []string{"성명", "직급", "소속"}
	scan := LocateHeader(grid, facultyHeaderKeywords, 3, 0)
	assert.True(t, scan.FellBack)
	assert.Equal(t, 0, scan.Row)
}
