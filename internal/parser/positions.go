package parser

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier classifies a canonical position into the three roster sections.
type Tier int

const (
	TierUnknown Tier = iota
	TierFullTime
	TierPartTime
	TierOther
)

func (t Tier) String() string {
	switch t {
	case TierFullTime:
		return "fullTime"
	case TierPartTime:
		return "partTime"
	case TierOther:
		return "other"
	default:
		return "unknown"
	}
}

// PositionTable maps the position labels found in roster cells to canonical
// bucket names. Aliases absorb export quirks like padded labels ("교  수")
// and the trailing-dot variants HR occasionally produces.
type PositionTable struct {
	Aliases  map[string]string
	FullTime []string
	PartTime []string
	Other    []string

	tiers map[string]Tier
}

// positionFile is the YAML shape of an override file. Each field replaces
// the corresponding default wholesale when present.
type positionFile struct {
	Aliases  map[string]string `yaml:"aliases"`
	FullTime []string          `yaml:"fullTime"`
	PartTime []string          `yaml:"partTime"`
	Other    []string          `yaml:"other"`
}

// DefaultPositionTable returns the built-in vocabulary for the university's
// roster exports.
func DefaultPositionTable() *PositionTable {
	t := &PositionTable{
		Aliases: map[string]string{
			"교  수":       "교수",
			"교수":         "교수",
			"부교수":        "부교수",
			"조교수":        "조교수",
			"부교수(비정년트랙)": "부교수(비정년트랙)",
			"조교수(비정년트랙)": "조교수(비정년트랙)",
			"특임교수":       "특임교수",
			"객원교수":       "객원교수",
			"겸임교원":       "겸임교원",
			"겸임교원(비전임)":  "겸임교원",
			"겸임교수":       "겸임교원",
			"겸임부교수":      "겸임교원",
			"겸임조교수":      "겸임교원",
			"겸임조교수.":     "겸임교원",
			"초빙교원":       "초빙교원",
			"초빙교원(비전임)":  "초빙교원",
			"강사":         "강사",
			"시간강사":       "강사",
			"명예교수":       "명예교수",
			"특별연구원":      "특별연구원",
			"학술연구교수":     "학술연구교수",
			"전임연구원":      "전임연구원",
			"학예연구사":      "학예연구사",
			"전문상담원":      "전문상담원",
			"전임지도자":      "전임지도자",
			"기술감독":       "기술감독",
		},
		FullTime: []string{"교수", "부교수", "조교수", "부교수(비정년트랙)", "조교수(비정년트랙)"},
		PartTime: []string{"특임교수", "객원교수", "겸임교원", "초빙교원", "강사", "명예교수"},
		Other:    []string{"특별연구원", "학술연구교수", "전임연구원", "학예연구사", "전문상담원", "전임지도자", "기술감독"},
	}
	t.index()
	return t
}

// LoadPositionTable reads a YAML override file on top of the defaults. An
// empty path returns the defaults unchanged.
func LoadPositionTable(path string) (*PositionTable, error) {
	t := DefaultPositionTable()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read position mapping %s: %w", path, err)
	}
	var f positionFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse position mapping %s: %w", path, err)
	}
	if f.Aliases != nil {
		t.Aliases = f.Aliases
	}
	if f.FullTime != nil {
		t.FullTime = f.FullTime
	}
	if f.PartTime != nil {
		t.PartTime = f.PartTime
	}
	if f.Other != nil {
		t.Other = f.Other
	}
	t.index()
	return t, nil
}

func (t *PositionTable) index() {
	t.tiers = make(map[string]Tier, len(t.FullTime)+len(t.PartTime)+len(t.Other))
	for _, p := range t.FullTime {
		t.tiers[p] = TierFullTime
	}
	for _, p := range t.PartTime {
		t.tiers[p] = TierPartTime
	}
	for _, p := range t.Other {
		t.tiers[p] = TierOther
	}
}

// Canonical resolves a raw position label to its canonical bucket name.
// Unmapped labels come back unchanged with ok=false; placement still
// proceeds under the raw label so nobody falls off the roster.
func (t *PositionTable) Canonical(raw string) (string, bool) {
	label := strings.TrimSpace(raw)
	if canon, ok := t.Aliases[label]; ok {
		return canon, true
	}
	return label, false
}

// TierOf returns the section a canonical position belongs to.
func (t *PositionTable) TierOf(canonical string) Tier {
	return t.tiers[canonical]
}

// All returns every canonical position in section order, for bucket
// initialization.
func (t *PositionTable) All() []string {
	out := make([]string, 0, len(t.FullTime)+len(t.PartTime)+len(t.Other))
	out = append(out, t.FullTime...)
	out = append(out, t.PartTime...)
	out = append(out, t.Other...)
	return out
}
