package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termAssignment(courseID int64) Assignment {
	return Assignment{
		CourseID:       courseID,
		ProgramID:      1,
		AcademicYearID: 3,
		SemesterID:     5,
		YearLevel:      2,
	}
}

func termEnrollment(studentID int64, studentNo, section, status string) Enrollment {
	return Enrollment{
		StudentID:      studentID,
		StudentNo:      studentNo,
		FullName:       "Student " + studentNo,
		ProgramID:      1,
		AcademicYearID: 3,
		SemesterID:     5,
		YearLevel:      2,
		SectionCode:    section,
		Status:         status,
	}
}

func TestBuild_MergesSectionsForSameStudent(t *testing.T) {
	assignments := []Assignment{termAssignment(10)}
	enrollments := []Enrollment{
		termEnrollment(100, "20250001", "A", "active"),
		termEnrollment(100, "20250001", "B", "active"),
	}

	entries := Build(assignments, enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, int64(100), entries[0].StudentID)
	assert.Equal(t, []string{"A", "B"}, entries[0].SectionCodes)
}

func TestBuild_ExcludesInactiveEnrollments(t *testing.T) {
	assignments := []Assignment{termAssignment(10)}
	enrollments := []Enrollment{
		termEnrollment(100, "20250001", "A", "active"),
		termEnrollment(101, "20250002", "A", "dropped"),
		termEnrollment(102, "20250003", "B", "completed"),
	}

	entries := Build(assignments, enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, int64(100), entries[0].StudentID)
}

func TestBuild_AssignmentOrderDoesNotChangeStudentSet(t *testing.T) {
	first := termAssignment(10)
	second := termAssignment(10)
	second.YearLevel = 3

	thirdYear := termEnrollment(200, "20250010", "C", "active")
	thirdYear.YearLevel = 3

	enrollments := []Enrollment{
		termEnrollment(100, "20250001", "A", "active"),
		thirdYear,
	}

	forward := Build([]Assignment{first, second}, enrollments)
	backward := Build([]Assignment{second, first}, enrollments)

	require.Len(t, forward, 2)
	require.Len(t, backward, 2)

	forwardIDs := map[int64]bool{}
	for _, e := range forward {
		forwardIDs[e.StudentID] = true
	}
	backwardIDs := map[int64]bool{}
	for _, e := range backward {
		backwardIDs[e.StudentID] = true
	}
	assert.Equal(t, forwardIDs, backwardIDs)
}

func TestBuild_FiltersOnAssignmentTerm(t *testing.T) {
	assignments := []Assignment{termAssignment(10)}

	otherProgram := termEnrollment(101, "20250002", "A", "active")
	otherProgram.ProgramID = 9

	otherSemester := termEnrollment(102, "20250003", "A", "active")
	otherSemester.SemesterID = 9

	otherYearLevel := termEnrollment(103, "20250004", "A", "active")
	otherYearLevel.YearLevel = 4

	enrollments := []Enrollment{
		termEnrollment(100, "20250001", "A", "active"),
		otherProgram,
		otherSemester,
		otherYearLevel,
	}

	entries := Build(assignments, enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, int64(100), entries[0].StudentID)
}

func TestBuild_BlankSectionRendersPlaceholder(t *testing.T) {
	assignments := []Assignment{termAssignment(10)}
	enrollments := []Enrollment{
		termEnrollment(100, "20250001", "", "active"),
	}

	entries := Build(assignments, enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, []string{SectionUnknown}, entries[0].SectionCodes)
}

func TestBuild_FirstSeenIdentityWins(t *testing.T) {
	assignments := []Assignment{termAssignment(10)}

	renamed := termEnrollment(100, "20250001", "B", "active")
	renamed.FullName = "Changed Name"

	enrollments := []Enrollment{
		termEnrollment(100, "20250001", "A", "active"),
		renamed,
	}

	entries := Build(assignments, enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, "Student 20250001", entries[0].FullName)
	assert.Equal(t, []string{"A", "B"}, entries[0].SectionCodes)
}

func TestBuild_DuplicateRowsDoNotDuplicateSections(t *testing.T) {
	assignments := []Assignment{termAssignment(10)}
	enrollments := []Enrollment{
		termEnrollment(100, "20250001", "A", "active"),
		termEnrollment(100, "20250001", "A", "active"),
	}

	entries := Build(assignments, enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"A"}, entries[0].SectionCodes)
}

func TestBuild_PreservesInsertionOrder(t *testing.T) {
	assignments := []Assignment{termAssignment(10)}
	enrollments := []Enrollment{
		termEnrollment(102, "20250003", "A", "active"),
		termEnrollment(100, "20250001", "A", "active"),
		termEnrollment(101, "20250002", "B", "active"),
	}

	entries := Build(assignments, enrollments)

	require.Len(t, entries, 3)
	assert.Equal(t, int64(102), entries[0].StudentID)
	assert.Equal(t, int64(100), entries[1].StudentID)
	assert.Equal(t, int64(101), entries[2].StudentID)
}

func TestBuild_EmptyInputs(t *testing.T) {
	assert.Empty(t, Build(nil, nil))
	assert.Empty(t, Build([]Assignment{termAssignment(10)}, nil))
	assert.Empty(t, Build(nil, []Enrollment{termEnrollment(100, "20250001", "A", "active")}))
}
