package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/pkg/roster"
	"github.com/idil/registrar/internal/pkg/schedule"
)

func TestNewAttendanceSessionResponse(t *testing.T) {
	created := time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC)
	session := &models.AttendanceSession{
		ID:         7,
		CourseID:   3,
		LecturerID: 12,
		Title:      "Week 3 lecture",
		Date:       "2026-03-10",
		StartTime:  "09:00:00",
		EndTime:    "11:00:00",
		CreatedAt:  created,
	}

	resp := NewAttendanceSessionResponse(session, schedule.StatusActive)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, int64(3), resp.CourseID)
	assert.Equal(t, int64(12), resp.LecturerID)
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, "09:00:00", resp.StartTime)
	assert.Equal(t, "11:00:00", resp.EndTime)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, created, resp.CreatedAt)
	assert.Nil(t, resp.Course)

	session.Course = &models.Course{ID: 3, Code: "CENG301", Name: "Operating Systems"}
	resp = NewAttendanceSessionResponse(session, schedule.StatusCompleted)
	require.NotNil(t, resp.Course)
	assert.Equal(t, "CENG301", resp.Course.Code)
	assert.Equal(t, "completed", resp.Status)
}

func TestNewAttendanceRecordResponse(t *testing.T) {
	note := "excused, medical report"
	recorded := time.Date(2026, 3, 10, 9, 4, 12, 0, time.UTC)

	tests := []struct {
		name          string
		record        *models.AttendanceRecord
		wantStudentNo string
		wantFullName  string
	}{
		{
			name: "student and user relations populated",
			record: &models.AttendanceRecord{
				ID:        1,
				SessionID: 7,
				StudentID: 41,
				Status:    models.AttendancePresent,
				Method:    models.MethodQR,
				Student: &models.StudentProfile{
					ID:        41,
					StudentNo: "20260001",
					User:      &models.User{FirstName: "Ada", LastName: "Lovelace"},
				},
				RecordedAt: recorded,
			},
			wantStudentNo: "20260001",
			wantFullName:  "Ada Lovelace",
		},
		{
			name: "student relation without user",
			record: &models.AttendanceRecord{
				ID:         2,
				SessionID:  7,
				StudentID:  42,
				Status:     models.AttendanceLate,
				Method:     models.MethodQR,
				Student:    &models.StudentProfile{ID: 42, StudentNo: "20260002"},
				RecordedAt: recorded,
			},
			wantStudentNo: "20260002",
			wantFullName:  "",
		},
		{
			name: "no relations loaded",
			record: &models.AttendanceRecord{
				ID:         3,
				SessionID:  7,
				StudentID:  43,
				Status:     models.AttendanceAbsent,
				Method:     models.MethodManual,
				Note:       &note,
				RecordedAt: recorded,
			},
			wantStudentNo: "",
			wantFullName:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewAttendanceRecordResponse(tt.record)

			assert.Equal(t, tt.record.ID, resp.ID)
			assert.Equal(t, tt.record.SessionID, resp.SessionID)
			assert.Equal(t, tt.record.StudentID, resp.StudentID)
			assert.Equal(t, string(tt.record.Status), resp.Status)
			assert.Equal(t, string(tt.record.Method), resp.Method)
			assert.Equal(t, tt.record.Note, resp.Note)
			assert.Equal(t, tt.wantStudentNo, resp.StudentNo)
			assert.Equal(t, tt.wantFullName, resp.FullName)
		})
	}
}

// The identity fields are omitempty so records without loaded relations
// do not serialize empty strings.
func TestAttendanceRecordResponse_JSONOmitsEmptyIdentity(t *testing.T) {
	resp := NewAttendanceRecordResponse(&models.AttendanceRecord{
		ID:        3,
		SessionID: 7,
		StudentID: 43,
		Status:    models.AttendanceAbsent,
		Method:    models.MethodManual,
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.NotContains(t, fields, "studentNo")
	assert.NotContains(t, fields, "fullName")
	assert.NotContains(t, fields, "note")
	assert.Equal(t, "absent", fields["status"])
	assert.Equal(t, "manual", fields["method"])
}

func TestNewRosterEntryResponse_JSONShape(t *testing.T) {
	resp := NewRosterEntryResponse(roster.Entry{
		StudentID:      41,
		StudentNo:      "20260001",
		FullName:       "Ada Lovelace",
		ProgramID:      2,
		AcademicYearID: 1,
		SemesterID:     5,
		SectionCodes:   []string{"A", roster.SectionUnknown},
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{
		"studentId", "studentNo", "fullName",
		"programId", "academicYearId", "semesterId", "sectionCodes",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, []interface{}{"A", "N/A"}, fields["sectionCodes"])
}
