package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantOffset: 40, wantLimit: 20},
		{name: "zero page falls back to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page falls back to first", page: -5, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size falls back to default", page: 2, size: 0, wantOffset: 10, wantLimit: DefaultPageSize},
		{name: "oversized page size falls back to default", page: 1, size: 500, wantOffset: 0, wantLimit: DefaultPageSize},
		{name: "max size is allowed", page: 2, size: MaxPageSize, wantOffset: 100, wantLimit: MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		page        int
		size        int
		wantCurrent int
		wantPages   int
		wantSize    int
	}{
		{name: "even split", total: 40, page: 2, size: 10, wantCurrent: 2, wantPages: 4, wantSize: 10},
		{name: "partial last page rounds up", total: 42, page: 1, size: 10, wantCurrent: 1, wantPages: 5, wantSize: 10},
		{name: "empty result still reports one page", total: 0, page: 1, size: 10, wantCurrent: 1, wantPages: 1, wantSize: 10},
		{name: "empty result beyond first page", total: 0, page: 3, size: 10, wantCurrent: 3, wantPages: 0, wantSize: 10},
		{name: "page beyond range clamps to last", total: 12, page: 9, size: 10, wantCurrent: 2, wantPages: 2, wantSize: 10},
		{name: "invalid size falls back to default", total: 25, page: 1, size: 0, wantCurrent: 1, wantPages: 3, wantSize: DefaultPageSize},
		{name: "invalid page falls back to first", total: 25, page: -1, size: 10, wantCurrent: 1, wantPages: 3, wantSize: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantCurrent, info.CurrentPage)
			assert.Equal(t, tt.wantPages, info.TotalPages)
			assert.Equal(t, tt.wantSize, info.PageSize)
			assert.Equal(t, tt.total, info.TotalItems)
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: DefaultPageSize},
		{name: "explicit values", query: "?page=3&pageSize=25", wantPage: 3, wantSize: 25},
		{name: "non numeric page", query: "?page=abc&pageSize=25", wantPage: 1, wantSize: 25},
		{name: "zero page", query: "?page=0", wantPage: 1, wantSize: DefaultPageSize},
		{name: "negative size", query: "?pageSize=-4", wantPage: 1, wantSize: DefaultPageSize},
		{name: "size over the cap", query: "?pageSize=1000", wantPage: 1, wantSize: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
