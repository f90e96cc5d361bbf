package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 20, wantOffset: 0},
		{name: "explicit", query: "page=3&limit=50", wantPage: 3, wantLimit: 50, wantOffset: 100},
		{name: "zero page clamps", query: "page=0", wantPage: 1, wantLimit: 20, wantOffset: 0},
		{name: "negative limit clamps", query: "limit=-5", wantPage: 1, wantLimit: 20, wantOffset: 0},
		{name: "limit capped", query: "limit=5000", wantPage: 1, wantLimit: 100, wantOffset: 0},
		{name: "non-numeric falls back", query: "page=abc&limit=xyz", wantPage: 1, wantLimit: 20, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(testContext(tt.query))
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("Parse(%q) = %+v, want page=%d limit=%d offset=%d",
					tt.query, got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestListPayload(t *testing.T) {
	p := Params{Page: 2, Limit: 20, Offset: 20}
	payload := p.ListPayload("items", []string{"a"}, 41)

	if payload["page"] != 2 || payload["limit"] != 20 {
		t.Errorf("payload stamps = page %v limit %v, want 2/20", payload["page"], payload["limit"])
	}
	if payload["total"] != int64(41) {
		t.Errorf("total = %v, want 41", payload["total"])
	}
	if _, ok := payload["items"]; !ok {
		t.Error("items key missing")
	}
}
