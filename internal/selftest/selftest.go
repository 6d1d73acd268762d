// Package selftest 内置自检：用手算期望值核对 SGPA/CGPA，并确认课程构造的三种校验失败。
package selftest

import (
	"fmt"
	"io"
	"math"

	"github.com/Dhruv-477/SGPA-calculator/internal/model"
	apperrors "github.com/Dhruv-477/SGPA-calculator/pkg/errors"
)

// tolerance 与两位小数展示精度一致
const tolerance = 0.01

// Check 单项检查结果
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Report 全部检查结果
type Report struct {
	Checks []Check
}

// Passed 所有检查均通过
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Run 依次执行全部检查并将过程写入 w
func Run(w io.Writer) *Report {
	fmt.Fprintln(w, "Running SGPA/CGPA Calculator Tests...")
	fmt.Fprintln(w, "=====================================")

	report := &Report{}
	report.Checks = append(report.Checks, checkSGPA(w))
	report.Checks = append(report.Checks, checkCGPA(w))
	report.Checks = append(report.Checks, checkValidation(w))

	fmt.Fprintln(w, "\nAll tests completed!")
	return report
}

type subjectRow struct {
	name string
	gp   float64
	ch   int
}

func buildSemester(number int, rows []subjectRow) (*model.Semester, error) {
	sem, err := model.NewSemester(number)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := sem.AddSubjectFields(r.name, r.gp, r.ch); err != nil {
			return nil, err
		}
	}
	return sem, nil
}

func checkSGPA(w io.Writer) Check {
	fmt.Fprintln(w, "\n1. Testing SGPA Calculation:")
	check := Check{Name: "sgpa"}

	sem, err := buildSemester(1, []subjectRow{
		{"Mathematics", 9.0, 4},
		{"Physics", 8.5, 3},
		{"Chemistry", 7.0, 3},
		{"Programming", 9.5, 4},
	})
	if err != nil {
		return failed(w, check, err)
	}

	expected := (9.0*4 + 8.5*3 + 7.0*3 + 9.5*4) / (4 + 3 + 3 + 4)
	actual, err := sem.CalculateSGPA()
	if err != nil {
		return failed(w, check, err)
	}

	return compare(w, check, "SGPA", expected, actual)
}

func checkCGPA(w io.Writer) Check {
	fmt.Fprintln(w, "\n2. Testing CGPA Calculation:")
	check := Check{Name: "cgpa"}

	student, err := model.NewStudent("Test Student")
	if err != nil {
		return failed(w, check, err)
	}
	sem1, err := buildSemester(1, []subjectRow{
		{"Math I", 9.0, 4},
		{"Physics I", 8.0, 3},
		{"Programming I", 9.5, 4},
	})
	if err != nil {
		return failed(w, check, err)
	}
	sem2, err := buildSemester(2, []subjectRow{
		{"Math II", 8.5, 4},
		{"Physics II", 7.5, 3},
		{"Programming II", 9.0, 4},
	})
	if err != nil {
		return failed(w, check, err)
	}
	for _, sem := range []*model.Semester{sem1, sem2} {
		if err := student.AddSemester(sem); err != nil {
			return failed(w, check, err)
		}
	}

	totalWeighted := (9.0*4 + 8.0*3 + 9.5*4) + (8.5*4 + 7.5*3 + 9.0*4)
	totalCredits := float64((4 + 3 + 4) + (4 + 3 + 4))
	expected := totalWeighted / totalCredits
	actual, err := student.CalculateCGPA()
	if err != nil {
		return failed(w, check, err)
	}

	return compare(w, check, "CGPA", expected, actual)
}

func checkValidation(w io.Writer) Check {
	fmt.Fprintln(w, "\n3. Testing Input Validation:")
	check := Check{Name: "validation", Passed: true}

	cases := []struct {
		label string
		row   subjectRow
	}{
		{"Grade point", subjectRow{"Invalid", 11.0, 3}},
		{"Credit hours", subjectRow{"Invalid", 8.0, -1}},
		{"Subject name", subjectRow{"", 8.0, 3}},
	}

	for _, c := range cases {
		_, err := model.NewSubject(c.row.name, c.row.gp, c.row.ch)
		if apperrors.IsValidation(err) {
			fmt.Fprintf(w, "   ✓ %s validation works\n", c.label)
			continue
		}
		check.Passed = false
		check.Detail = fmt.Sprintf("%s: expected validation error, got %v", c.label, err)
		fmt.Fprintf(w, "   ✗ %s validation failed (kind: %s)\n", c.label, apperrors.Kind(err))
	}

	fmt.Fprintf(w, "   Validation Test Result: %s\n", verdict(check.Passed))
	return check
}

// ── 辅助函数 ──

func compare(w io.Writer, check Check, label string, expected, actual float64) Check {
	fmt.Fprintf(w, "   Expected %s: %.2f\n", label, expected)
	fmt.Fprintf(w, "   Actual %s: %.2f\n", label, actual)

	check.Passed = math.Abs(expected-actual) < tolerance
	if !check.Passed {
		check.Detail = fmt.Sprintf("expected %.4f, got %.4f", expected, actual)
	}
	fmt.Fprintf(w, "   Test Result: %s\n", verdict(check.Passed))
	return check
}

func failed(w io.Writer, check Check, err error) Check {
	check.Passed = false
	check.Detail = err.Error()
	fmt.Fprintf(w, "   Error: %v\n", err)
	fmt.Fprintf(w, "   Test Result: %s\n", verdict(false))
	return check
}

func verdict(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
