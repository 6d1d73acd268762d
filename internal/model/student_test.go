package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Dhruv-477/SGPA-calculator/pkg/errors"
)

func newScenarioBStudent(t *testing.T) *Student {
	t.Helper()
	student, err := NewStudent("Test Student")
	require.NoError(t, err)

	sem1 := newTestSemester(t, 1,
		subjectFields{"Math I", 9.0, 4},
		subjectFields{"Physics I", 8.0, 3},
		subjectFields{"Programming I", 9.5, 4},
	)
	sem2 := newTestSemester(t, 2,
		subjectFields{"Math II", 8.5, 4},
		subjectFields{"Physics II", 7.5, 3},
		subjectFields{"Programming II", 9.0, 4},
	)
	require.NoError(t, student.AddSemester(sem1))
	require.NoError(t, student.AddSemester(sem2))
	return student
}

func TestNewStudent_EmptyName(t *testing.T) {
	for _, name := range []string{"", "  "} {
		student, err := NewStudent(name)
		assert.Nil(t, student)
		assert.ErrorIs(t, err, ErrStudentNameEmpty)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestStudent_CalculateCGPA_ScenarioB(t *testing.T) {
	student := newScenarioBStudent(t)

	cgpa, err := student.CalculateCGPA()
	require.NoError(t, err)

	assert.Equal(t, 22, student.TotalCreditHours())
	assert.InDelta(t, 190.5, student.TotalWeightedGradePoints(), 1e-12)
	assert.InDelta(t, 190.5/22, cgpa, 1e-12)
	assert.InDelta(t, 8.66, cgpa, 0.005)
}

func TestStudent_CalculateCGPA_EqualsFlattenedWeightedSum(t *testing.T) {
	student := newScenarioBStudent(t)

	var weighted float64
	var credits int
	for _, sem := range student.Semesters() {
		for _, sub := range sem.Subjects() {
			weighted += sub.WeightedGradePoints()
			credits += sub.CreditHours()
		}
	}

	cgpa, err := student.CalculateCGPA()
	require.NoError(t, err)
	assert.InDelta(t, weighted/float64(credits), cgpa, 1e-12)
}

func TestStudent_CalculateCGPA_NoSemesters(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)

	_, err = student.CalculateCGPA()
	assert.ErrorIs(t, err, ErrNoSemesters)
	assert.True(t, apperrors.IsInvalidOperation(err))
}

func TestStudent_CalculateCGPA_OnlyEmptySemesters(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)
	require.NoError(t, student.AddSemester(newTestSemester(t, 1)))

	_, err = student.CalculateCGPA()
	assert.ErrorIs(t, err, ErrNoCreditHours)
	assert.True(t, apperrors.IsInvalidOperation(err))
}

func TestStudent_AddSemester_Nil(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)

	assert.ErrorIs(t, student.AddSemester(nil), ErrNilSemester)
	assert.Equal(t, 0, student.SemesterCount())
}

func TestStudent_CalculateSGPA_Lookup(t *testing.T) {
	student := newScenarioBStudent(t)

	sgpa, err := student.CalculateSGPA(2)
	require.NoError(t, err)
	assert.InDelta(t, (8.5*4+7.5*3+9.0*4)/11, sgpa, 1e-12)

	_, err = student.CalculateSGPA(7)
	assert.ErrorIs(t, err, ErrSemesterNotFound)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "semester 7")
}

func TestStudent_CalculateSGPA_EmptySemesterPropagates(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)
	require.NoError(t, student.AddSemester(newTestSemester(t, 1)))

	_, err = student.CalculateSGPA(1)
	assert.ErrorIs(t, err, ErrEmptySemester)
}

func TestStudent_DuplicateSemesterNumbers_FirstMatchWins(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)
	require.NoError(t, student.AddSemester(newTestSemester(t, 1, subjectFields{"A", 6, 3})))
	require.NoError(t, student.AddSemester(newTestSemester(t, 1, subjectFields{"B", 9, 3})))

	assert.Equal(t, 2, student.SemesterCount())
	sgpa, err := student.CalculateSGPA(1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, sgpa)
}

func TestStudent_RemoveSemester(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)
	require.NoError(t, student.AddSemester(newTestSemester(t, 2, subjectFields{"A", 6, 3})))
	require.NoError(t, student.AddSemester(newTestSemester(t, 1, subjectFields{"B", 7, 3})))
	require.NoError(t, student.AddSemester(newTestSemester(t, 2, subjectFields{"C", 8, 3})))

	assert.Equal(t, 2, student.RemoveSemester(2))
	assert.Equal(t, 0, student.RemoveSemester(9))
	assert.Equal(t, 1, student.SemesterCount())
	assert.False(t, student.HasSemester(2))
	assert.True(t, student.HasSemester(1))
}

func TestStudent_StorageOrderVsPresentationOrder(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)
	for _, n := range []int{3, 1, 2} {
		require.NoError(t, student.AddSemester(newTestSemester(t, n, subjectFields{"X", 8, 3})))
	}

	var stored, sorted []int
	for _, sem := range student.Semesters() {
		stored = append(stored, sem.Number())
	}
	for _, sem := range student.SemestersByNumber() {
		sorted = append(sorted, sem.Number())
	}

	assert.Equal(t, []int{3, 1, 2}, stored)
	assert.Equal(t, []int{1, 2, 3}, sorted)
}

func TestStudent_SemesterSummary_NoSemesters(t *testing.T) {
	student, err := NewStudent("Alice")
	require.NoError(t, err)

	summary, err := student.SemesterSummary()
	require.NoError(t, err)
	assert.Equal(t, NoSemestersPlaceholder, summary)
}

func TestStudent_SemesterSummary_Report(t *testing.T) {
	student, err := NewStudent("Bob")
	require.NoError(t, err)
	require.NoError(t, student.AddSemester(newTestSemester(t, 2, subjectFields{"Physics", 8.5, 3})))
	require.NoError(t, student.AddSemester(newTestSemester(t, 1, subjectFields{"Mathematics", 9, 4})))

	summary, err := student.SemesterSummary()
	require.NoError(t, err)

	expected := "Student: Bob\n" +
		"============\n\n" +
		"Semester 1:\n" +
		"  - Mathematics: 9 GP × 4 CH = 36\n" +
		"  SGPA: 9.00\n" +
		"  Total Credits: 4\n\n" +
		"Semester 2:\n" +
		"  - Physics: 8.5 GP × 3 CH = 25.5\n" +
		"  SGPA: 8.50\n" +
		"  Total Credits: 3\n\n" +
		"Overall CGPA: 8.79\n" +
		"Total Credits: 7\n"
	assert.Equal(t, expected, summary)
}

func TestStudent_SemesterSummary_EmptySemesterPropagates(t *testing.T) {
	student, err := NewStudent("Bob")
	require.NoError(t, err)
	require.NoError(t, student.AddSemester(newTestSemester(t, 1)))

	_, err = student.SemesterSummary()
	assert.ErrorIs(t, err, ErrEmptySemester)
}

func TestStudent_String(t *testing.T) {
	student := newScenarioBStudent(t)
	assert.Equal(t, "Test Student: 2 semesters, CGPA: 8.66", student.String())

	empty, err := NewStudent("Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice: 0 semesters, CGPA: n/a", empty.String())
}
