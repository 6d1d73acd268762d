package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 固定 0–10 绩点制
const (
	MinGradePoint = 0.0
	MaxGradePoint = 10.0
)

// Subject 课程：名称、绩点、学分
//
// 字段仅在构造时赋值一次，之后只读。
type Subject struct {
	name        string
	gradePoint  float64
	creditHours int
}

// NewSubject 校验并创建课程
func NewSubject(name string, gradePoint float64, creditHours int) (*Subject, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrSubjectNameEmpty
	}
	// NaN 与任何值比较均为 false，需单独拦截
	if math.IsNaN(gradePoint) || gradePoint < MinGradePoint || gradePoint > MaxGradePoint {
		return nil, fmt.Errorf("%w (got %v)", ErrGradePointOutOfRange, gradePoint)
	}
	if creditHours <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrCreditHoursNotPositive, creditHours)
	}

	return &Subject{
		name:        name,
		gradePoint:  gradePoint,
		creditHours: creditHours,
	}, nil
}

func (s *Subject) Name() string        { return s.name }
func (s *Subject) GradePoint() float64 { return s.gradePoint }
func (s *Subject) CreditHours() int    { return s.creditHours }

// WeightedGradePoints 加权绩点 = 绩点 × 学分
func (s *Subject) WeightedGradePoints() float64 {
	return s.gradePoint * float64(s.creditHours)
}

func (s *Subject) String() string {
	return fmt.Sprintf("%s: %s GP × %d CH = %s",
		s.name, formatNumber(s.gradePoint), s.creditHours, formatNumber(s.WeightedGradePoints()))
}

// formatNumber 以最短形式输出浮点数（9、8.5、25.5）
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
