package model

import (
	"fmt"

	apperrors "github.com/Dhruv-477/SGPA-calculator/pkg/errors"
)

// ── 领域模型错误 ──

// 校验类错误
var (
	ErrSubjectNameEmpty          = fmt.Errorf("%w: subject name cannot be empty", apperrors.ErrValidation)
	ErrGradePointOutOfRange      = fmt.Errorf("%w: grade point must be between %g and %g", apperrors.ErrValidation, MinGradePoint, MaxGradePoint)
	ErrCreditHoursNotPositive    = fmt.Errorf("%w: credit hours must be positive", apperrors.ErrValidation)
	ErrSemesterNumberNotPositive = fmt.Errorf("%w: semester number must be positive", apperrors.ErrValidation)
	ErrNilSubject                = fmt.Errorf("%w: subject is required", apperrors.ErrValidation)
	ErrNilSemester               = fmt.Errorf("%w: semester is required", apperrors.ErrValidation)
	ErrStudentNameEmpty          = fmt.Errorf("%w: student name cannot be empty", apperrors.ErrValidation)
	ErrSemesterNotFound          = fmt.Errorf("%w: semester not found", apperrors.ErrValidation)
)

// 非法操作类错误
var (
	ErrEmptySemester = fmt.Errorf("%w: cannot calculate SGPA for a semester with no subjects", apperrors.ErrInvalidOperation)
	ErrNoSemesters   = fmt.Errorf("%w: cannot calculate CGPA for a student with no semesters", apperrors.ErrInvalidOperation)
	ErrNoCreditHours = fmt.Errorf("%w: cannot calculate CGPA with zero total credit hours", apperrors.ErrInvalidOperation)
)
