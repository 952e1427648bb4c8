package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestLastFiltersByUID(t *testing.T) {
	r := NewRouter(NewStore(SampleReadings()))

	w := get(t, r, "/last?uid=6,1,99")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var got []Reading
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].UID != 6 || got[1].UID != 1 {
		t.Fatalf("readings = %+v, want uids [6 1]", got)
	}
	if got[1].LocationLabel != "Living room" {
		t.Fatalf("location = %q, want %q", got[1].LocationLabel, "Living room")
	}
}

func TestLastRejectsBadUID(t *testing.T) {
	r := NewRouter(NewStore(nil))
	if w := get(t, r, "/last?uid=1,x"); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPutReplacesReading(t *testing.T) {
	s := NewStore(SampleReadings())
	r := NewRouter(s)

	body := `{"uid":1,"value":25.5,"location_label":"Living room","type":"temperature"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/readings", strings.NewReader(body)))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}

	got := s.Last([]int{1})
	if len(got) != 1 || got[0].Value != 25.5 {
		t.Fatalf("Last = %+v, want value 25.5", got)
	}
}

func TestHealth(t *testing.T) {
	r := NewRouter(NewStore(nil))
	if w := get(t, r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestParseUIDs(t *testing.T) {
	got, err := ParseUIDs(" 1, 2,,10 ")
	if err != nil {
		t.Fatalf("ParseUIDs: %v", err)
	}
	if FormatUIDs(got) != "1,2,10" {
		t.Fatalf("uids = %v, want [1 2 10]", got)
	}
}
