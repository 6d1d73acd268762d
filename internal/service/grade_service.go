package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Dhruv-477/SGPA-calculator/internal/dto"
	"github.com/Dhruv-477/SGPA-calculator/internal/model"
	apperrors "github.com/Dhruv-477/SGPA-calculator/pkg/errors"
)

// ── 成绩模块业务错误 ──

var (
	ErrNoValidSubjects = fmt.Errorf("%w: no valid subjects were added", apperrors.ErrValidation)
	ErrNilInput        = fmt.Errorf("%w: input is required", apperrors.ErrValidation)
)

// GradeService 成绩业务接口
//
// 设计说明：
//   - 一次会话只持有一个 Student，随进程结束丢弃
//   - 同号学期采用"先删后加"的替换策略，模型层本身允许重复
//   - 所有错误原样向上返回，由交互层打印后继续主循环
type GradeService interface {
	// Student 返回当前会话的学生
	Student() *model.Student
	// RecordSemester 录入学期；replaced 表示覆盖了已有同号学期
	RecordSemester(ctx context.Context, in *dto.SemesterInput) (resp *dto.SemesterResponse, replaced bool, err error)
	// SemesterDetail 查询单个学期
	SemesterDetail(ctx context.Context, number int) (*dto.SemesterResponse, error)
	// AvailableSemesters 已录入学期号（升序）
	AvailableSemesters(ctx context.Context) []int
	// Summary 生成 CGPA 与汇总报告
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
}

type gradeService struct {
	student *model.Student
	logger  *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(student *model.Student, logger *zap.Logger) GradeService {
	return &gradeService{student: student, logger: logger}
}

func (s *gradeService) Student() *model.Student { return s.student }

// ────────────────────── RecordSemester ──────────────────────

func (s *gradeService) RecordSemester(_ context.Context, in *dto.SemesterInput) (*dto.SemesterResponse, bool, error) {
	if in == nil {
		return nil, false, ErrNilInput
	}
	if err := dto.Validate(in); err != nil {
		return nil, false, err
	}
	if len(in.Subjects) == 0 {
		return nil, false, ErrNoValidSubjects
	}

	semester, err := model.NewSemester(in.Number)
	if err != nil {
		return nil, false, err
	}
	for _, sub := range in.Subjects {
		if err := semester.AddSubjectFields(sub.Name, sub.GradePoint, sub.CreditHours); err != nil {
			s.logger.Warn("课程校验失败",
				zap.Int("semester", in.Number),
				zap.String("subject", sub.Name),
				zap.String("kind", apperrors.Kind(err)),
				zap.Error(err),
			)
			return nil, false, err
		}
	}

	// 构建成功后再替换，避免输入非法时丢失旧数据
	removed := s.student.RemoveSemester(in.Number)
	if removed > 0 {
		s.logger.Warn("覆盖已有学期", zap.Int("semester", in.Number), zap.Int("removed", removed))
	}

	if err := s.student.AddSemester(semester); err != nil {
		return nil, false, err
	}

	resp, err := toSemesterResponse(semester)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("学期已录入",
		zap.Int("semester", in.Number),
		zap.Int("subjects", semester.SubjectCount()),
		zap.Float64("sgpa", resp.SGPA),
	)
	return resp, removed > 0, nil
}

// ────────────────────── SemesterDetail ──────────────────────

func (s *gradeService) SemesterDetail(_ context.Context, number int) (*dto.SemesterResponse, error) {
	// 通过 Student.CalculateSGPA 取得统一的"未找到"错误
	if _, err := s.student.CalculateSGPA(number); err != nil {
		if errors.Is(err, model.ErrSemesterNotFound) {
			s.logger.Debug("学期不存在", zap.Int("semester", number))
		} else {
			s.logger.Error("计算 SGPA 失败", zap.Int("semester", number), zap.Error(err))
		}
		return nil, err
	}

	semester, _ := s.student.Semester(number)
	return toSemesterResponse(semester)
}

// ────────────────────── AvailableSemesters ──────────────────────

func (s *gradeService) AvailableSemesters(_ context.Context) []int {
	numbers := make([]int, 0, s.student.SemesterCount())
	for _, sem := range s.student.SemestersByNumber() {
		numbers = append(numbers, sem.Number())
	}
	return numbers
}

// ────────────────────── Summary ──────────────────────

func (s *gradeService) Summary(_ context.Context) (*dto.SummaryResponse, error) {
	report, err := s.student.SemesterSummary()
	if err != nil {
		s.logger.Error("生成汇总报告失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.SummaryResponse{
		StudentName:      s.student.Name(),
		Semesters:        make([]dto.SemesterResponse, 0, s.student.SemesterCount()),
		TotalCreditHours: s.student.TotalCreditHours(),
		Report:           report,
	}
	if s.student.SemesterCount() == 0 {
		return resp, nil
	}

	for _, sem := range s.student.SemestersByNumber() {
		sr, err := toSemesterResponse(sem)
		if err != nil {
			return nil, err
		}
		resp.Semesters = append(resp.Semesters, *sr)
	}

	cgpa, err := s.student.CalculateCGPA()
	if err != nil {
		return nil, err
	}
	resp.CGPA = cgpa

	s.logger.Debug("汇总已生成",
		zap.Int("semesters", len(resp.Semesters)),
		zap.Float64("cgpa", cgpa),
	)
	return resp, nil
}

// ── 内部辅助方法 ──

func toSemesterResponse(semester *model.Semester) (*dto.SemesterResponse, error) {
	sgpa, err := semester.CalculateSGPA()
	if err != nil {
		return nil, err
	}

	subjects := semester.Subjects()
	resp := &dto.SemesterResponse{
		Number:                   semester.Number(),
		Subjects:                 make([]dto.SubjectResponse, 0, len(subjects)),
		TotalCreditHours:         semester.TotalCreditHours(),
		TotalWeightedGradePoints: semester.TotalWeightedGradePoints(),
		SGPA:                     sgpa,
	}
	for _, sub := range subjects {
		resp.Subjects = append(resp.Subjects, dto.SubjectResponse{
			Name:                sub.Name(),
			GradePoint:          sub.GradePoint(),
			CreditHours:         sub.CreditHours(),
			WeightedGradePoints: sub.WeightedGradePoints(),
			Display:             sub.String(),
		})
	}
	return resp, nil
}
