package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"workhours/internal/api"
	"workhours/internal/aw"
	"workhours/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var tokyo, _ = time.LoadLocation("Asia/Tokyo")

// fakeAW serves just enough of the ActivityWatch API for the provider.
func fakeAW(t *testing.T, events []map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/buckets":
			json.NewEncoder(w).Encode(map[string]any{
				"aw-watcher-afk_TestPC": map[string]any{"id": "aw-watcher-afk_TestPC"},
			})
		case strings.Contains(r.URL.Path, "/events"):
			json.NewEncoder(w).Encode(events)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, events []map[string]any) *Server {
	t.Helper()
	st, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	awSrv := fakeAW(t, events)
	s := New(aw.NewClient(awSrv.URL), st, tokyo)
	s.now = func() time.Time {
		return time.Date(2025, 9, 15, 12, 0, 0, 0, tokyo)
	}
	// Holiday API is not reachable in tests; pre-cache the year so no
	// outbound fetch happens.
	st.PutHolidayDates(2025, []string{"2025-08-11"})
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetDataRows(t *testing.T) {
	events := []map[string]any{
		{
			"timestamp": "2025-08-04T09:00:00+09:00",
			"duration":  14400.0,
			"data":      map[string]any{"status": "not-afk"},
		},
	}
	s := newTestServer(t, events)
	w := doRequest(t, s, http.MethodGet, "/data/2025-08", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var data api.MonthData
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Rows) != 31 {
		t.Fatalf("rows = %d, want 31", len(data.Rows))
	}
	row := data.Rows[3]
	if row.Date != "2025-08-04" || !row.HasWork {
		t.Errorf("row = %+v", row)
	}
	if row.StartH == nil || *row.StartH != 9 {
		t.Errorf("startH = %v", row.StartH)
	}
	// 2025-08-11 is a cached national holiday but has no work, so the
	// flag stays down.
	if data.Rows[10].Holiday {
		t.Error("holiday flag must only be set for work days")
	}
}

func TestGetDataInvalidMonth(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodGet, "/data/garbage", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(t, s, http.MethodGet, "/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc api.SettingsDoc
	json.Unmarshal(w.Body.Bytes(), &doc)
	if doc.NoColon || doc.MinEventSeconds != 150 || doc.Bucket != nil {
		t.Errorf("defaults = %+v", doc)
	}

	bucket := "TestPC"
	w = doRequest(t, s, http.MethodPost, "/settings", api.SettingsDoc{
		NoColon: true, MinEventSeconds: 300, Bucket: &bucket,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &doc)
	if !doc.NoColon || doc.MinEventSeconds != 300 || doc.Bucket == nil || *doc.Bucket != "TestPC" {
		t.Errorf("echoed = %+v", doc)
	}

	// The echo reflects the store, not the request.
	w = doRequest(t, s, http.MethodGet, "/settings", nil)
	json.Unmarshal(w.Body.Bytes(), &doc)
	if !doc.NoColon || doc.MinEventSeconds != 300 {
		t.Errorf("persisted = %+v", doc)
	}
}

func TestPostSettingsEmptyBucketBecomesNull(t *testing.T) {
	s := newTestServer(t, nil)
	empty := ""
	w := doRequest(t, s, http.MethodPost, "/settings", api.SettingsDoc{
		MinEventSeconds: 150, Bucket: &empty,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc api.SettingsDoc
	json.Unmarshal(w.Body.Bytes(), &doc)
	if doc.Bucket != nil {
		t.Errorf("bucket = %q, want null", *doc.Bucket)
	}
}

func TestPostSettingsInvalidJSON(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetBucketsStripsPrefix(t *testing.T) {
	s := newTestServer(t, nil)
	w := doRequest(t, s, http.MethodGet, "/settings/buckets", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var hosts []string
	json.Unmarshal(w.Body.Bytes(), &hosts)
	if len(hosts) != 1 || hosts[0] != "TestPC" {
		t.Errorf("hosts = %v", hosts)
	}
}

func TestMinEventFilterAppliedServerSide(t *testing.T) {
	events := []map[string]any{
		{
			"timestamp": "2025-08-04T09:00:00+09:00",
			"duration":  100.0, // below the 150s default
			"data":      map[string]any{"status": "not-afk"},
		},
	}
	s := newTestServer(t, events)
	w := doRequest(t, s, http.MethodGet, "/data/2025-08", nil)

	var data api.MonthData
	json.Unmarshal(w.Body.Bytes(), &data)
	if data.Rows[3].HasWork {
		t.Error("sub-threshold events must not create a work day")
	}
	if len(data.Rows[3].Events) != 0 {
		t.Error("sub-threshold events must be filtered from the row")
	}
}
