package middleware

import (
	"Balgil/internal/pkg/logger"
	"bytes"
	log "log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORSAllowOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "http://localhost:5173", "*"},
		{"listed", []string{"https://balgil.kr"}, "https://balgil.kr", "https://balgil.kr"},
		{"unlisted", []string{"https://balgil.kr"}, "https://evil.example", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tc.origins))
			r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.want {
				t.Fatalf("allow-origin = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/t", func(c *gin.Context) {
		c.String(http.StatusOK, logger.TraceID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(TraceHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Body.String() != "abc-123" || rec.Header().Get(TraceHeader) != "abc-123" {
		t.Fatalf("propagated trace = %q / %q", rec.Body.String(), rec.Header().Get(TraceHeader))
	}

	for _, header := range []string{"", "evil\"} injected", strings.Repeat("a", 129)} {
		req = httptest.NewRequest(http.MethodGet, "/t", nil)
		if header != "" {
			req.Header.Set(TraceHeader, header)
		}
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if id := rec.Body.String(); len(id) != 36 || rec.Header().Get(TraceHeader) != id {
			t.Fatalf("trace for header %q = %q", header, id)
		}
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(buf, nil)))
	t.Cleanup(func() { log.SetDefault(prev) })
	return buf
}

func TestAuditMiddlewareTruncatesAndSkips(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := captureLogs(t)

	r := gin.New()
	r.Use(AuditMiddleware("/api/ping"))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/users/:user_id", func(c *gin.Context) {
		b, _ := c.GetRawData()
		c.String(http.StatusOK, "%d", len(b))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if logs.Len() != 0 {
		t.Fatalf("ping audited: %s", logs.String())
	}

	big := `{"profileImg":"data:image/png;base64,` + strings.Repeat("A", maxAuditBody) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/minji", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if want := strconv.Itoa(len(big)); rec.Body.String() != want {
		t.Fatalf("handler saw %s bytes, want %s", rec.Body.String(), want)
	}
	out := logs.String()
	if !strings.Contains(out, `"req_truncated":true`) || !strings.Contains(out, `"res_truncated":false`) {
		t.Fatalf("audit log = %s", out)
	}
	if strings.Count(out, "A") > maxAuditBody {
		t.Fatal("request body logged past the limit")
	}
}

func TestAuditMiddlewareKeepsBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuditMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := c.GetRawData()
		c.Data(http.StatusOK, "text/plain", b)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"text":"안녕"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Body.String() != `{"text":"안녕"}` {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
