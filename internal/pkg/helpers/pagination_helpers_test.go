package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative size uses default", 2, -5, 10, DefaultPageSize},
		{"oversized page size uses default", 1, 500, 0, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Fatalf("got offset=%d limit=%d, want offset=%d limit=%d", offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	if info.TotalPages != 5 || info.CurrentPage != 2 || info.TotalItems != 45 {
		t.Fatalf("unexpected pagination info: %+v", info)
	}

	// Page beyond the end is clamped
	info = NewPaginationInfo(45, 99, 10)
	if info.CurrentPage != 5 {
		t.Fatalf("expected the current page to clamp to 5, got %d", info.CurrentPage)
	}

	// Empty result sets still report one page
	info = NewPaginationInfo(0, 1, 10)
	if info.TotalPages != 1 {
		t.Fatalf("expected 1 page for an empty set, got %d", info.TotalPages)
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
		{"defaults", "", 1, DefaultPageSize},
		{"explicit values", "?page=3&size=25", 3, 25},
		{"garbage falls back", "?page=abc&size=xyz", 1, DefaultPageSize},
		{"out of range falls back", "?page=-2&size=9999", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/items"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			if page != tt.wantPage || size != tt.wantSize {
				t.Fatalf("got page=%d size=%d, want page=%d size=%d", page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", got)
	}
	if got := ParseDuration("not-a-duration", time.Hour); got != time.Hour {
		t.Fatalf("expected the default on parse failure, got %v", got)
	}
}
