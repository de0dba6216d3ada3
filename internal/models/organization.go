package models

// Department is one top-level unit of the organization structure. The order
// of the slice is the display order of the dashboard tree; SubDepartments is
// empty for flat units (administrative centers, institutes).
type Department struct {
	Name           string   `json:"name"`
	SubDepartments []string `json:"subDepts"`
}

// GraduateSchoolName is the grouping unit whose sub-departments are the
// individual graduate schools.
const GraduateSchoolName = "대학원"

// CatchAllUnitName receives employees that no configured unit claims.
const CatchAllUnitName = "기타"

// UnassignedDept is the fallback department label for leave entries.
const UnassignedDept = "미배정"

// DefaultStructure returns the built-in organization taxonomy used until an
// administrator stores one. Classification must always consult the currently
// stored structure, not this default, when one exists.
func DefaultStructure() []Department {
	return []Department{
		{Name: GraduateSchoolName, SubDepartments: []string{
			"교육대학원", "일반대학원", "재활복지대학원", "태권도대학원", "문화예술대학원", "스포츠과학대학원",
		}},
		{Name: "무도대학", SubDepartments: []string{
			"유도학과", "유도경기지도학과", "무도학과", "태권도학과", "경호학과", "군사학과", "무도스포츠산업학과(계약학과)",
		}},
		{Name: "체육과학대학", SubDepartments: []string{
			"스포츠레저학과", "특수체육교육과", "체육학과", "골프학부",
		}},
		{Name: "문화예술대학", SubDepartments: []string{
			"무용과", "미디어디자인학과", "영화영상학과", "회화학과", "국악과", "연극학과", "문화유산학과", "문화콘텐츠학과", "실용음악과",
		}},
		{Name: "인문사회융합대학", SubDepartments: []string{
			"경영학과", "관광경영학과", "경영정보학과", "경찰행정학과", "영어과", "중국학과", "미용경영학과", "미용경영학과(야)", "사회복지학과",
		}},
		{Name: "AI바이오융합대학", SubDepartments: []string{
			"AI융합학부", "환경학과", "보건환경안전학과", "바이오생명공학과", "식품조리학부", "물리치료학과",
		}},
		{Name: "용오름대학"},
		{Name: "산학협력단"},
		{Name: "평가성과분석센터"},
		{Name: "교육혁신원"},
		{Name: "원격교육지원센터"},
		{Name: "박물관"},
		{Name: "체육지원실"},
		{Name: "교수학습지원센터"},
		{Name: "스포츠.웰니스연구센터"},
		{Name: "특수체육연구소"},
		{Name: "무도연구소"},
		{Name: "혁신사업추진단"},
		{Name: "학생생활상담센터"},
		{Name: "취창업지원센터"},
		{Name: "인권센터"},
	}
}
