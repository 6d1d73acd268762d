package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Dhruv-477/SGPA-calculator/internal/dto"
	"github.com/Dhruv-477/SGPA-calculator/internal/model"
	apperrors "github.com/Dhruv-477/SGPA-calculator/pkg/errors"
)

// ── 测试辅助 ──

func setupTestGradeService(t *testing.T) GradeService {
	t.Helper()
	student, err := model.NewStudent("Test Student")
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}
	return NewGradeService(student, zap.NewNop())
}

func scenarioBInputs() []*dto.SemesterInput {
	return []*dto.SemesterInput{
		{Number: 1, Subjects: []dto.SubjectInput{
			{Name: "Math I", GradePoint: 9.0, CreditHours: 4},
			{Name: "Physics I", GradePoint: 8.0, CreditHours: 3},
			{Name: "Programming I", GradePoint: 9.5, CreditHours: 4},
		}},
		{Number: 2, Subjects: []dto.SubjectInput{
			{Name: "Math II", GradePoint: 8.5, CreditHours: 4},
			{Name: "Physics II", GradePoint: 7.5, CreditHours: 3},
			{Name: "Programming II", GradePoint: 9.0, CreditHours: 4},
		}},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ── RecordSemester 测试 ──

func TestGradeService_RecordSemester_Success(t *testing.T) {
	svc := setupTestGradeService(t)

	resp, replaced, err := svc.RecordSemester(context.Background(), scenarioBInputs()[0])
	if err != nil {
		t.Fatalf("RecordSemester 应成功: %v", err)
	}
	if replaced {
		t.Error("首次录入不应标记为覆盖")
	}
	if resp.Number != 1 || len(resp.Subjects) != 3 {
		t.Errorf("返回学期信息不正确: %+v", resp)
	}
	if resp.TotalCreditHours != 11 {
		t.Errorf("期望学分=11，实际=%d", resp.TotalCreditHours)
	}
	if !approxEqual(resp.SGPA, 98.0/11) {
		t.Errorf("期望 SGPA=%.4f，实际=%.4f", 98.0/11, resp.SGPA)
	}
	if resp.Subjects[1].Display != "Physics I: 8 GP × 3 CH = 24" {
		t.Errorf("课程展示文本不正确: %s", resp.Subjects[1].Display)
	}
}

func TestGradeService_RecordSemester_ReplacesSameNumber(t *testing.T) {
	svc := setupTestGradeService(t)
	ctx := context.Background()

	if _, _, err := svc.RecordSemester(ctx, scenarioBInputs()[0]); err != nil {
		t.Fatalf("首次录入应成功: %v", err)
	}

	_, replaced, err := svc.RecordSemester(ctx, &dto.SemesterInput{
		Number:   1,
		Subjects: []dto.SubjectInput{{Name: "Retake", GradePoint: 6, CreditHours: 2}},
	})
	if err != nil {
		t.Fatalf("覆盖录入应成功: %v", err)
	}
	if !replaced {
		t.Error("同号学期应标记为覆盖")
	}
	if svc.Student().SemesterCount() != 1 {
		t.Errorf("覆盖后应只有 1 个学期，实际=%d", svc.Student().SemesterCount())
	}

	sgpa, err := svc.Student().CalculateSGPA(1)
	if err != nil || sgpa != 6 {
		t.Errorf("覆盖后 SGPA 应为 6，实际=%v err=%v", sgpa, err)
	}
}

func TestGradeService_RecordSemester_InvalidInputKeepsExisting(t *testing.T) {
	svc := setupTestGradeService(t)
	ctx := context.Background()

	if _, _, err := svc.RecordSemester(ctx, scenarioBInputs()[0]); err != nil {
		t.Fatalf("首次录入应成功: %v", err)
	}

	_, _, err := svc.RecordSemester(ctx, &dto.SemesterInput{
		Number:   1,
		Subjects: []dto.SubjectInput{{Name: "Bad", GradePoint: 11, CreditHours: 3}},
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("期望 ErrValidation，实际: %v", err)
	}
	if sem, ok := svc.Student().Semester(1); !ok || sem.SubjectCount() != 3 {
		t.Error("非法输入不应影响已有学期")
	}
}

func TestGradeService_RecordSemester_NoSubjects(t *testing.T) {
	svc := setupTestGradeService(t)

	_, _, err := svc.RecordSemester(context.Background(), &dto.SemesterInput{Number: 1})
	if !errors.Is(err, ErrNoValidSubjects) {
		t.Errorf("期望 ErrNoValidSubjects，实际: %v", err)
	}
	if svc.Student().SemesterCount() != 0 {
		t.Error("无课程的学期不应保存")
	}
}

func TestGradeService_RecordSemester_BadNumber(t *testing.T) {
	svc := setupTestGradeService(t)

	for _, n := range []int{0, -1} {
		_, _, err := svc.RecordSemester(context.Background(), &dto.SemesterInput{
			Number:   n,
			Subjects: []dto.SubjectInput{{Name: "A", GradePoint: 8, CreditHours: 3}},
		})
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("学期号 %d 期望 ErrValidation，实际: %v", n, err)
		}
	}
}

func TestGradeService_RecordSemester_NilInput(t *testing.T) {
	svc := setupTestGradeService(t)

	_, _, err := svc.RecordSemester(context.Background(), nil)
	if !errors.Is(err, ErrNilInput) {
		t.Errorf("期望 ErrNilInput，实际: %v", err)
	}
}

// ── SemesterDetail 测试 ──

func TestGradeService_SemesterDetail(t *testing.T) {
	svc := setupTestGradeService(t)
	ctx := context.Background()
	for _, in := range scenarioBInputs() {
		if _, _, err := svc.RecordSemester(ctx, in); err != nil {
			t.Fatalf("录入失败: %v", err)
		}
	}

	resp, err := svc.SemesterDetail(ctx, 2)
	if err != nil {
		t.Fatalf("SemesterDetail 应成功: %v", err)
	}
	if !approxEqual(resp.SGPA, 92.5/11) {
		t.Errorf("期望 SGPA=%.4f，实际=%.4f", 92.5/11, resp.SGPA)
	}

	_, err = svc.SemesterDetail(ctx, 5)
	if !errors.Is(err, model.ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

// ── AvailableSemesters 测试 ──

func TestGradeService_AvailableSemesters_Sorted(t *testing.T) {
	svc := setupTestGradeService(t)
	ctx := context.Background()
	for _, n := range []int{3, 1, 2} {
		if _, _, err := svc.RecordSemester(ctx, &dto.SemesterInput{
			Number:   n,
			Subjects: []dto.SubjectInput{{Name: "A", GradePoint: 8, CreditHours: 3}},
		}); err != nil {
			t.Fatalf("录入失败: %v", err)
		}
	}

	got := svc.AvailableSemesters(ctx)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("期望 %v，实际 %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("期望 %v，实际 %v", want, got)
		}
	}
}

// ── Summary 测试 ──

func TestGradeService_Summary_Empty(t *testing.T) {
	svc := setupTestGradeService(t)

	resp, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("空汇总不应返回错误: %v", err)
	}
	if resp.Report != model.NoSemestersPlaceholder {
		t.Errorf("期望占位文本，实际=%q", resp.Report)
	}
	if len(resp.Semesters) != 0 || resp.CGPA != 0 {
		t.Errorf("空汇总不应包含学期或 CGPA: %+v", resp)
	}
}

func TestGradeService_Summary_ScenarioB(t *testing.T) {
	svc := setupTestGradeService(t)
	ctx := context.Background()
	inputs := scenarioBInputs()
	// 倒序录入，验证汇总按学期号排序
	for i := len(inputs) - 1; i >= 0; i-- {
		if _, _, err := svc.RecordSemester(ctx, inputs[i]); err != nil {
			t.Fatalf("录入失败: %v", err)
		}
	}

	resp, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if !approxEqual(resp.CGPA, 190.5/22) {
		t.Errorf("期望 CGPA=%.4f，实际=%.4f", 190.5/22, resp.CGPA)
	}
	if resp.TotalCreditHours != 22 {
		t.Errorf("期望总学分=22，实际=%d", resp.TotalCreditHours)
	}
	if resp.Semesters[0].Number != 1 || resp.Semesters[1].Number != 2 {
		t.Error("汇总应按学期号升序")
	}
	if !strings.Contains(resp.Report, "Overall CGPA: 8.66") {
		t.Errorf("报告应包含 CGPA 行:\n%s", resp.Report)
	}
}
