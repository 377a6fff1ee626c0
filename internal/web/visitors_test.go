package web

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "visitors.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTestStore(t)
	a := s.hashIP("10.0.0.1")
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16", len(a))
	}
	if a != s.hashIP("10.0.0.1") {
		t.Error("hash not stable")
	}
	if a == s.hashIP("10.0.0.2") {
		t.Error("distinct addresses collided")
	}
	if a == "10.0.0.1" {
		t.Error("address stored in clear")
	}
}

func TestStoreStats(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	visits := []struct {
		ip, path string
		age      time.Duration
	}{
		{"1.1.1.1", "/", 0},
		{"1.1.1.1", "/api/resume", time.Hour},
		{"2.2.2.2", "/", 3 * 24 * time.Hour},
		{"3.3.3.3", "/", 30 * 24 * time.Hour},
	}
	for _, v := range visits {
		at := now.Add(-v.age)
		s.now = func() time.Time { return at }
		if err := s.Record(v.ip, "test", v.path); err != nil {
			t.Fatal(err)
		}
	}
	s.now = func() time.Time { return now }

	st, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalVisitors != 4 {
		t.Errorf("total = %d, want 4", st.TotalVisitors)
	}
	if st.UniqueVisitors != 3 {
		t.Errorf("unique = %d, want 3", st.UniqueVisitors)
	}
	if st.VisitorsToday != 2 {
		t.Errorf("today = %d, want 2", st.VisitorsToday)
	}
	if st.VisitorsThisWeek != 3 {
		t.Errorf("week = %d, want 3", st.VisitorsThisWeek)
	}
	if len(st.TopPaths) != 2 || st.TopPaths[0].Path != "/" || st.TopPaths[0].Visits != 3 {
		t.Errorf("top paths = %+v", st.TopPaths)
	}
}

func TestStoreCleanup(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{now, now.AddDate(0, -11, 0), now.AddDate(0, -13, 0), now.AddDate(-2, 0, 0)} {
		at := at
		s.now = func() time.Time { return at }
		if err := s.Record("1.1.1.1", "", "/"); err != nil {
			t.Fatal(err)
		}
	}
	s.now = func() time.Time { return now }

	n, err := s.Cleanup()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("removed %d rows, want 2", n)
	}
	st, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalVisitors != 2 {
		t.Errorf("left %d rows, want 2", st.TotalVisitors)
	}
}

func TestTrack(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		path    string
		dnt     bool
		counted bool
	}{
		{"page", "/", false, true},
		{"api", "/api/resume", false, true},
		{"do not track", "/", true, false},
		{"stream", "/stream/torus", false, false},
		{"frame", "/frame/torus", false, false},
		{"stats", "/stats", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			e := gin.New()
			e.Use(Track(s))
			e.GET("/*any", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.dnt {
				req.Header.Set("DNT", "1")
			}
			e.ServeHTTP(httptest.NewRecorder(), req)

			st, err := s.Stats()
			if err != nil {
				t.Fatal(err)
			}
			if got := st.TotalVisitors == 1; got != tt.counted {
				t.Errorf("counted = %v, want %v", got, tt.counted)
			}
		})
	}
}
