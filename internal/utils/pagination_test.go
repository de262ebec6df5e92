package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		pages    int
		hasNext  bool
		hasPrev  bool
		nextNum  *int
		prevNum  *int
	}{
		{
			name: "first of many", page: 1, perPage: 10, total: 35,
			pages: 4, hasNext: true, hasPrev: false, nextNum: intPtr(2),
		},
		{
			name: "middle page", page: 2, perPage: 10, total: 35,
			pages: 4, hasNext: true, hasPrev: true, nextNum: intPtr(3), prevNum: intPtr(1),
		},
		{
			name: "last page", page: 4, perPage: 10, total: 35,
			pages: 4, hasNext: false, hasPrev: true, prevNum: intPtr(3),
		},
		{
			name: "exact multiple", page: 2, perPage: 10, total: 20,
			pages: 2, hasNext: false, hasPrev: true, prevNum: intPtr(1),
		},
		{
			name: "zero rows", page: 1, perPage: 13, total: 0,
			pages: 0, hasNext: false, hasPrev: false,
		},
		{
			name: "page beyond last stays consistent", page: 9, perPage: 10, total: 35,
			pages: 4, hasNext: false, hasPrev: true, prevNum: intPtr(8),
		},
		{
			name: "single page", page: 1, perPage: 13, total: 5,
			pages: 1, hasNext: false, hasPrev: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetPagination(tt.page, tt.perPage, tt.total)

			require.Equal(t, tt.pages, info.Pages)
			require.Equal(t, tt.hasNext, info.HasNext)
			require.Equal(t, tt.hasPrev, info.HasPrev)
			require.Equal(t, tt.nextNum, info.NextNum)
			require.Equal(t, tt.prevNum, info.PrevNum)
			require.Equal(t, tt.page, info.Page)
			require.Equal(t, tt.perPage, info.PerPage)
			require.Equal(t, tt.total, info.Total)
		})
	}
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		query   string
		page    int
		perPage int
	}{
		{name: "defaults", query: "", page: 1, perPage: 13},
		{name: "explicit", query: "page=3&results_per_page=25", page: 3, perPage: 25},
		{name: "page below minimum", query: "page=0", page: 1, perPage: 13},
		{name: "per page above cap", query: "results_per_page=500", page: 1, perPage: 13},
		{name: "garbage values", query: "page=abc&results_per_page=xyz", page: 1, perPage: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			params := GetPaginationParams(c)
			require.Equal(t, tt.page, params.Page)
			require.Equal(t, tt.perPage, params.PerPage)
		})
	}
}

func intPtr(n int) *int {
	return &n
}
