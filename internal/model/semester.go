package model

import "fmt"

// Semester 学期：一个学期号 + 按录入顺序排列的课程
//
// 学期号在构造后不可修改；课程只追加、不删除。
// 同一学生下学期号是否唯一由上层（service）决定，本类型不做约束。
type Semester struct {
	number   int
	subjects []*Subject
}

// NewSemester 创建学期，学期号必须为正整数
func NewSemester(number int) (*Semester, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrSemesterNumberNotPositive, number)
	}
	return &Semester{number: number}, nil
}

func (s *Semester) Number() int { return s.number }

// Subjects 返回课程列表副本（录入顺序）
func (s *Semester) Subjects() []*Subject {
	out := make([]*Subject, len(s.subjects))
	copy(out, s.subjects)
	return out
}

func (s *Semester) SubjectCount() int { return len(s.subjects) }

// AddSubject 追加一门已校验的课程
func (s *Semester) AddSubject(subject *Subject) error {
	if subject == nil {
		return ErrNilSubject
	}
	s.subjects = append(s.subjects, subject)
	return nil
}

// AddSubjectFields 由原始字段构造课程并追加，构造错误原样返回
func (s *Semester) AddSubjectFields(name string, gradePoint float64, creditHours int) error {
	subject, err := NewSubject(name, gradePoint, creditHours)
	if err != nil {
		return err
	}
	return s.AddSubject(subject)
}

// TotalCreditHours 学分合计，无课程时为 0
func (s *Semester) TotalCreditHours() int {
	total := 0
	for _, sub := range s.subjects {
		total += sub.CreditHours()
	}
	return total
}

// TotalWeightedGradePoints 加权绩点合计，无课程时为 0
func (s *Semester) TotalWeightedGradePoints() float64 {
	total := 0.0
	for _, sub := range s.subjects {
		total += sub.WeightedGradePoints()
	}
	return total
}

// CalculateSGPA 学期加权平均绩点
func (s *Semester) CalculateSGPA() (float64, error) {
	// 先判空，保证返回明确的错误类别而不是依赖除零
	if len(s.subjects) == 0 {
		return 0, fmt.Errorf("%w (semester %d)", ErrEmptySemester, s.number)
	}
	return s.TotalWeightedGradePoints() / float64(s.TotalCreditHours()), nil
}

// Summary 单行摘要；无课程时返回 CalculateSGPA 的错误
func (s *Semester) Summary() (string, error) {
	sgpa, err := s.CalculateSGPA()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Semester %d: %d subjects, %d credit hours, SGPA: %.2f",
		s.number, len(s.subjects), s.TotalCreditHours(), sgpa), nil
}

// String 与 Summary 相同，但无课程时 SGPA 显示为 n/a
func (s *Semester) String() string {
	if line, err := s.Summary(); err == nil {
		return line
	}
	return fmt.Sprintf("Semester %d: %d subjects, %d credit hours, SGPA: n/a",
		s.number, len(s.subjects), s.TotalCreditHours())
}
