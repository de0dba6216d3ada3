package parser

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func appointmentWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func assistantFixture(t *testing.T) []byte {
	return appointmentWorkbook(t, [][]interface{}{
		{"교원 발령사항 현황"},
		{"출력일: 2025.09.01"},
		{},
		{"No.", "대학", "소속", "직번", "성명", "직렬", "직급", "재직구분", "발령구분", "발령시작일", "발령종료일"},
		{"1", "무도대학", "교학과\n(겸)경호학과", "2001", "정성연", "조교", "조교", "재직", "재임용", "2023.03.01", "2025.02.28"},
		{"2", "무도대학", "교학과\n(겸)경호학과", "2001", "정성연", "조교", "조교", "퇴직", "최초임용", "2021.03.01", "2023.02.28"},
		{"3", "보건복지과학대학", "물리치료학과", "2002", "김조교", "조교", "조교", "재직", "최초임용", "2025.03.01", ""},
		{"4", "기획처", "대외협력과", "2003", "박행정", "조교", "조교", "재직", "재임용", "2024.03.01", ""},
		{"5", "무도대학", "유도학과", "2004", "이퇴직", "조교", "조교", "퇴직", "재임용", "2020.03.01", "2022.02.28"},
		{"6", "무도대학", "유도학과", "1001", "홍교수", "전임교원", "교수", "재직", "재임용", "2010.03.01", ""},
	})
}

func TestAssistantParserFlatDeduplicates(t *testing.T) {
	snapshot, err := NewAssistantParser().Parse(assistantFixture(t))
	require.NoError(t, err)

	flat := snapshot.Flat
	require.Len(t, flat.Assistants, 4, "4 distinct name+college pairs, faculty row excluded")

	byName := map[string]int{}
	for i, a := range flat.Assistants {
		byName[a.Name] = i
	}
	dup := flat.Assistants[byName["정성연"]]
	assert.Equal(t, "2023-03-01", dup.StartDate, "duplicate keeps the latest start date")
	assert.True(t, dup.IsActive)
	assert.False(t, dup.IsFirstAppointment)

	first := flat.Assistants[byName["김조교"]]
	assert.True(t, first.IsFirstAppointment)
	assert.Equal(t, "2025-03-01", first.StartDate)

	assert.Equal(t, 4, flat.Summary.TotalRecords)
	assert.Equal(t, 3, flat.Summary.TotalActive)
	assert.Equal(t, 1, flat.Summary.TotalFirstAppointments)
	assert.Equal(t, 1, flat.ActualCounts["무도대학"])
	assert.Equal(t, 1, flat.ActualCounts["보건복지과학대학"])
}

func TestAssistantParserTableStructure(t *testing.T) {
	snapshot, err := NewAssistantParser().Parse(assistantFixture(t))
	require.NoError(t, err)

	table := snapshot.Table
	require.Len(t, table.Colleges, 2)
	assert.Equal(t, "무도대학", table.Colleges[0].CategoryName)
	assert.Equal(t, "AI바이오융합대학", table.Colleges[1].CategoryName, "college alias folded")

	dept := table.Colleges[0].Departments[0]
	assert.Equal(t, "교학과", dept.MainDept)
	assert.Equal(t, []string{"(겸)경호학과"}, dept.SubDepts)
	assert.Equal(t, 1, dept.Current)
	assert.Equal(t, 1, dept.Allocated)
	require.Len(t, dept.Assistants, 1)
	assert.Equal(t, "정성연", dept.Assistants[0].Name)

	require.Len(t, table.Administrative, 1)
	assert.Equal(t, "기획처", table.Administrative[0].CategoryName)
	assert.Equal(t, "대외협력과", table.Administrative[0].Departments[0].MainDept)

	assert.Equal(t, 2, table.Summary.TotalColleges)
	assert.Equal(t, 1, table.Summary.TotalAdmin)
	assert.Equal(t, 3, table.Summary.GrandTotal)
}

func TestAssistantParserHeaderScan(t *testing.T) {
	snapshot, err := NewAssistantParser().Parse(assistantFixture(t))
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.Warnings.HeaderRow)
	assert.False(t, snapshot.Warnings.HeaderFallback)
}

func TestSplitDepartmentLabel(t *testing.T) {
	main, subs := splitDepartmentLabel("(겸)무도계열전공학부\n교학과\n(겸)경호학과")
	assert.Equal(t, "교학과", main, "first segment without the co-appointment marker")
	assert.Equal(t, []string{"(겸)무도계열전공학부", "(겸)경호학과"}, subs)

	main, subs = splitDepartmentLabel("(겸)경호학과")
	assert.Equal(t, "(겸)경호학과", main, "all-marker labels fall back to the first segment")
	assert.Equal(t, []string{"(겸)경호학과"}, subs)

	main, subs = splitDepartmentLabel("교학과")
	assert.Equal(t, "교학과", main)
	assert.Empty(t, subs)
}

func TestNormalizeCollege(t *testing.T) {
	assert.Equal(t, "AI바이오융합대학", normalizeCollege("보건복지과학대학"))
	assert.Equal(t, "AI바이오융합대학", normalizeCollege("AI바이오융합대학"))
	assert.Equal(t, "인문사회융합대학", normalizeCollege("AI융합대학"))
	assert.Equal(t, "무도대학", normalizeCollege(" 무도대학 "))
	assert.Equal(t, "기타", normalizeCollege(""))
}

func TestAssistantParserIdempotent(t *testing.T) {
	data := assistantFixture(t)
	p := NewAssistantParser()

	first, err := p.Parse(data)
	require.NoError(t, err)
	second, err := p.Parse(data)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
