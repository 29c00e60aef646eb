package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompiledPatterns_Email(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"student@registrar.edu", true},
		{"first.last+tag@sub.domain.org", true},
		{"UPPER@registrar.edu", false},
		{"missing-at.registrar.edu", false},
		{"user@domain", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, CompiledPatterns.Email.MatchString(tt.value))
		})
	}
}

func TestCompiledPatterns_StudentNo(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"20260001", true},
		{"00000000", true},
		{"2026001", false},
		{"202600012", false},
		{"2026000a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, CompiledPatterns.StudentNo.MatchString(tt.value))
		})
	}
}

func TestCompiledPatterns_CourseCode(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"CS101", true},
		{"MATH2031", true},
		{"SE305", true},
		{"C101", false},
		{"cs101", false},
		{"CS10", false},
		{"TOOLONG101", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, CompiledPatterns.CourseCode.MatchString(tt.value))
		})
	}
}

func TestCompiledPatterns_SectionCode(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"A", true},
		{"1A", true},
		{"B2", true},
		{"ABCD", true},
		{"ABCDE", false},
		{"a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, CompiledPatterns.SectionCode.MatchString(tt.value))
		})
	}
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("Ada").WithMinLength(2).WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("A").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("much too long for this").WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("").Validate())

	// Optional empty values pass regardless of other rules
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(5).Validate())

	assert.True(t, NewStringValidation("CS101").WithPattern(CompiledPatterns.CourseCode).Validate())
	assert.False(t, NewStringValidation("101CS").WithPattern(CompiledPatterns.CourseCode).Validate())
}

func TestNumericValidation(t *testing.T) {
	assert.True(t, NewNumericValidation(3).WithMin(1).WithMax(8).Validate())
	assert.True(t, NewNumericValidation(1).WithMin(1).WithMax(8).Validate())
	assert.True(t, NewNumericValidation(8).WithMin(1).WithMax(8).Validate())
	assert.False(t, NewNumericValidation(0).WithMin(1).WithMax(8).Validate())
	assert.False(t, NewNumericValidation(9).WithMin(1).WithMax(8).Validate())
}
