package dto

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindSlotRequest(t *testing.T, body string) (CreateSlotRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/slots", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateSlotRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestCreateSlotRequestBinding(t *testing.T) {
	req, err := bindSlotRequest(t, `{"name":"Morning","timeStart":"09:00","timeEnd":"11:00"}`)
	if err != nil {
		t.Fatalf("valid slot request should bind: %v", err)
	}
	if req.Name != "Morning" || req.TimeStart != "09:00" || req.TimeEnd != "11:00" {
		t.Fatalf("unexpected bound values: %+v", req)
	}
}

func TestCreateSlotRequestRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"timeStart":"09:00","timeEnd":"11:00"}`},
		{"malformed time", `{"name":"Morning","timeStart":"9am","timeEnd":"11:00"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := bindSlotRequest(t, tt.body); err == nil {
				t.Fatalf("expected a binding error")
			}
		})
	}
}
