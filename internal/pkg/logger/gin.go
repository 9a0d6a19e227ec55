package logger

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessEntry struct {
	Time      string  `json:"time"`
	Level     string  `json:"level"`
	Msg       string  `json:"msg"`
	TraceID   string  `json:"trace_id,omitempty"`
	Method    string  `json:"method"`
	Path      string  `json:"path"`
	Status    int     `json:"status"`
	LatencyMs float64 `json:"latency_ms"`
	ClientIP  string  `json:"client_ip"`
	BodySize  int     `json:"body_size"`
	Error     string  `json:"error,omitempty"`
}

// SetupGin 访问日志与 panic 恢复; skipPaths 不记录访问日志 (如健康检查)
func SetupGin(r *gin.Engine, w io.Writer, skipPaths ...string) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    w,
		SkipPaths: skipPaths,
		Formatter: formatAccess,
	}))

	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams) string {
	entry := accessEntry{
		Time:      p.TimeStamp.Format(time.RFC3339),
		Level:     accessLevel(p.StatusCode),
		Msg:       "http_access",
		TraceID:   accessTraceID(p),
		Method:    p.Method,
		Path:      p.Path,
		Status:    p.StatusCode,
		LatencyMs: float64(p.Latency.Microseconds()) / 1000,
		ClientIP:  p.ClientIP,
		BodySize:  p.BodySize,
		Error:     p.ErrorMessage,
	}
	b, err := json.Marshal(&entry)
	if err != nil {
		return `{"level":"ERROR","msg":"http_access encode failed"}` + "\n"
	}
	return string(b) + "\n"
}

func accessLevel(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "ERROR"
	case status >= http.StatusBadRequest:
		return "WARN"
	default:
		return "INFO"
	}
}

func accessTraceID(p gin.LogFormatterParams) string {
	if id, ok := p.Keys[TraceIDKey].(string); ok && id != "" {
		return id
	}
	if p.Request != nil {
		return TraceID(p.Request.Context())
	}
	return ""
}
