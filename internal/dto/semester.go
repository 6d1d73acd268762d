package dto

// ── 学期模块 DTO ──

// SubjectInput 录入的单门课程
type SubjectInput struct {
	Name        string  `json:"name"         validate:"required,notblank"`
	GradePoint  float64 `json:"grade_point"  validate:"gte=0,lte=10"`
	CreditHours int     `json:"credit_hours" validate:"gt=0"`
}

// SemesterInput 录入的整个学期
type SemesterInput struct {
	Number   int            `json:"number"   validate:"gt=0"`
	Subjects []SubjectInput `json:"subjects" validate:"dive"`
}

// SubjectResponse 课程展示信息
type SubjectResponse struct {
	Name                string  `json:"name"`
	GradePoint          float64 `json:"grade_point"`
	CreditHours         int     `json:"credit_hours"`
	WeightedGradePoints float64 `json:"weighted_grade_points"`
	Display             string  `json:"display"` // "<name>: <gp> GP × <ch> CH = <weighted>"
}

// SemesterResponse 学期展示信息
type SemesterResponse struct {
	Number                   int               `json:"number"`
	Subjects                 []SubjectResponse `json:"subjects"`
	TotalCreditHours         int               `json:"total_credit_hours"`
	TotalWeightedGradePoints float64           `json:"total_weighted_grade_points"`
	SGPA                     float64           `json:"sgpa"`
}

// SummaryResponse 学生汇总
type SummaryResponse struct {
	StudentName      string             `json:"student_name"`
	Semesters        []SemesterResponse `json:"semesters"` // 按学期号升序
	TotalCreditHours int                `json:"total_credit_hours"`
	CGPA             float64            `json:"cgpa"`
	Report           string             `json:"report"`
}
