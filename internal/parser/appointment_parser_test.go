package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedToday() time.Time {
	return time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
}

func appointmentGrid(rows ...[]string) Grid {
	g := Grid{
		{"교원 인사발령 내역"},
		{},
		{},
		{"No.", "대학", "소속", "성명", "재직구분", "발령구분", "휴직구분", "휴직시작일", "휴직종료일"},
	}
	return append(g, rows...)
}

func TestAppointmentParserSelectsCurrentLeave(t *testing.T) {
	p := NewAppointmentParser(fixedToday)
	result := p.ParseGrid(appointmentGrid(
		[]string{"1", "무도대학", "유도학과", "김여름", "휴직", "휴직발령", "육아휴직", "2025.03.01", "2026.02.28"},
		[]string{"2", "무도대학", "유도학과", "김여름", "휴직", "휴직발령", "질병휴직", "2022.03.01", "2023.02.28"},
	))

	require.Len(t, result.Leave, 1)
	entry := result.Leave[0]
	assert.Equal(t, "김여름", entry.Name)
	assert.Equal(t, "유도학과", entry.Dept)
	assert.Equal(t, "2025.03.01 ~ 2026.02.28", entry.Period)
	assert.Equal(t, "육아휴직 (1차: 2022.03.01 ~ 2023.02.28)", entry.Remarks)
}

func TestAppointmentParserExcludesHistoricalOnly(t *testing.T) {
	p := NewAppointmentParser(fixedToday)
	result := p.ParseGrid(appointmentGrid(
		[]string{"1", "무도대학", "유도학과", "강과거", "휴직", "휴직발령", "육아휴직", "2020.03.01", "2021.02.28"},
	))
	assert.Empty(t, result.Leave)
}

func TestAppointmentParserSkipsHonoraryAndNonLeave(t *testing.T) {
	p := NewAppointmentParser(fixedToday)
	result := p.ParseGrid(appointmentGrid(
		[]string{"1", "무도대학", "유도학과", "박명예", "명예휴직", "휴직발령", "", "2025.03.01", "2026.02.28"},
		[]string{"2", "무도대학", "유도학과", "이재직", "재직", "승진발령", "", "", ""},
	))
	assert.Empty(t, result.Leave)
	assert.Equal(t, 2, result.Warnings.SkippedRows)
}

func TestAppointmentParserDeptFallsBackToCollege(t *testing.T) {
	p := NewAppointmentParser(fixedToday)
	result := p.ParseGrid(appointmentGrid(
		[]string{"1", "무도대학", "", "조단과", "휴직", "휴직발령", "가사휴직", "2025.03.01", "2026.02.28"},
	))
	require.Len(t, result.Leave, 1)
	assert.Equal(t, "무도대학", result.Leave[0].Dept)
}

func TestAppointmentParserDashedDatesAccepted(t *testing.T) {
	p := NewAppointmentParser(fixedToday)
	result := p.ParseGrid(appointmentGrid(
		[]string{"1", "무도대학", "유도학과", "한대시", "휴직", "휴직발령", "육아휴직", "2025-03-01", "2026-02-28"},
	))
	require.Len(t, result.Leave, 1)
	assert.Equal(t, "2025.03.01 ~ 2026.02.28", result.Leave[0].Period)
}
