package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values", 2, 20, 2, 20},
		{"page less than 1", 0, 20, constants.DefaultPage, 20},
		{"negative pageSize", 1, -1, 1, constants.DefaultPageSize},
		{"pageSize exceeds MaxPageSize", 1, 200, 1, constants.MaxPageSize},
		{"pageSize equals MaxPageSize", 1, constants.MaxPageSize, 1, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func newQueryContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"no params", "", constants.DefaultPage, constants.DefaultPageSize},
		{"valid page and page_size", "page=3&page_size=25", 3, 25},
		{"invalid page", "page=abc&page_size=20", constants.DefaultPage, 20},
		{"page_size exceeds max", "page=1&page_size=500", 1, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePagination(newQueryContext(tt.query))
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestParseOptionalUintQuery(t *testing.T) {
	got := ParseOptionalUintQuery(newQueryContext("customer_id=7"), "customer_id")
	require.NotNil(t, got)
	assert.Equal(t, uint(7), *got)

	assert.Nil(t, ParseOptionalUintQuery(newQueryContext("customer_id=x"), "customer_id"))
	assert.Nil(t, ParseOptionalUintQuery(newQueryContext("customer_id=0"), "customer_id"))
	assert.Nil(t, ParseOptionalUintQuery(newQueryContext(""), "customer_id"))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 15))
	assert.Equal(t, 1, TotalPages(15, 15))
	assert.Equal(t, 2, TotalPages(16, 15))
	assert.Equal(t, 1, TotalPages(5, 0))
}
