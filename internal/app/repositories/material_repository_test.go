package repositories

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idil/registrar/internal/app/models"
)

// stubRow feeds canned column values into Scan destinations. A nil value
// leaves its destination zeroed, like a NULL column from a LEFT JOIN.
type stubRow struct {
	values []any
}

func (r stubRow) Scan(dest ...any) error {
	for i, d := range dest {
		if i >= len(r.values) || r.values[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func TestScanMaterial_WithFile(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fileID := int64(55)
	description := "week 3 slides"

	material, err := scanMaterial(stubRow{values: []any{
		int64(9), int64(3), int64(12), "Slides", &description, &fileID, now, now,
		&fileID, ptr("slides.pdf"), ptr("/uploads/slides.pdf"),
		ptr("http://localhost:8080/uploads/slides.pdf"), ptr(int64(2048)),
		ptr("application/pdf"), ptr("COURSE_MATERIAL"), ptr(int64(9)),
		ptr(int64(12)), &now, &now,
	}})
	require.NoError(t, err)

	assert.Equal(t, int64(9), material.ID)
	assert.Equal(t, "Slides", material.Title)
	require.NotNil(t, material.FileID)
	assert.Equal(t, int64(55), *material.FileID)

	require.NotNil(t, material.File)
	assert.Equal(t, "slides.pdf", material.File.FileName)
	assert.Equal(t, "application/pdf", material.File.FileType)
	assert.Equal(t, models.FileTypeCourseMaterial, material.File.ResourceType)
	assert.Equal(t, int64(9), material.File.ResourceID)
	assert.Equal(t, int64(12), material.File.UploadedBy)
}

func TestScanMaterial_WithoutFile(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	material, err := scanMaterial(stubRow{values: []any{
		int64(9), int64(3), int64(12), "Reading list", nil, nil, now, now,
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
	}})
	require.NoError(t, err)

	assert.Nil(t, material.FileID)
	assert.Nil(t, material.File)
	assert.Nil(t, material.Description)
}

func ptr[T any](v T) *T {
	return &v
}
