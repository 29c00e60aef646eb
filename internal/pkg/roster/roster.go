package roster

// SectionUnknown is the placeholder code used when an enrollment has no
// resolvable section.
const SectionUnknown = "N/A"

const statusActive = "active"

// Assignment is one course-to-term link a roster is computed for.
type Assignment struct {
	CourseID       int64
	ProgramID      int64
	AcademicYearID int64
	SemesterID     int64
	YearLevel      int
}

// Enrollment is one student-section membership row with the section's
// term attributes joined in.
type Enrollment struct {
	StudentID      int64
	StudentNo      string
	FullName       string
	ProgramID      int64
	AcademicYearID int64
	SemesterID     int64
	YearLevel      int
	SectionCode    string
	Status         string
}

// Entry is one student in a computed roster.
type Entry struct {
	StudentID      int64
	StudentNo      string
	FullName       string
	ProgramID      int64
	AcademicYearID int64
	SemesterID     int64
	SectionCodes   []string
}

type entryKey struct {
	studentID      int64
	programID      int64
	semesterID     int64
	academicYearID int64
}

// Build computes the students inherited into a course from its term
// assignments. For each assignment it selects the active enrollments whose
// program, academic year, semester and year level match, then deduplicates
// students by (student, program, semester, academic year). The first match
// fixes a student's identity fields; further matches only append section
// codes. Output order is insertion order.
func Build(assignments []Assignment, enrollments []Enrollment) []Entry {
	entries := make(map[entryKey]*Entry)
	order := make([]entryKey, 0)

	for _, a := range assignments {
		for _, e := range enrollments {
			if !matches(a, e) {
				continue
			}

			k := entryKey{
				studentID:      e.StudentID,
				programID:      e.ProgramID,
				semesterID:     e.SemesterID,
				academicYearID: e.AcademicYearID,
			}

			entry, ok := entries[k]
			if !ok {
				entry = &Entry{
					StudentID:      e.StudentID,
					StudentNo:      e.StudentNo,
					FullName:       e.FullName,
					ProgramID:      e.ProgramID,
					AcademicYearID: e.AcademicYearID,
					SemesterID:     e.SemesterID,
				}
				entries[k] = entry
				order = append(order, k)
			}

			code := e.SectionCode
			if code == "" {
				code = SectionUnknown
			}
			if !containsCode(entry.SectionCodes, code) {
				entry.SectionCodes = append(entry.SectionCodes, code)
			}
		}
	}

	result := make([]Entry, 0, len(order))
	for _, k := range order {
		result = append(result, *entries[k])
	}
	return result
}

func matches(a Assignment, e Enrollment) bool {
	return e.Status == statusActive &&
		e.ProgramID == a.ProgramID &&
		e.AcademicYearID == a.AcademicYearID &&
		e.SemesterID == a.SemesterID &&
		e.YearLevel == a.YearLevel
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
