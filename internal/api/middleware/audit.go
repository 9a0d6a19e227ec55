package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxAuditBody = 16384

// auditWriter 复制最多 maxAuditBody 字节的响应正文
type auditWriter struct {
	gin.ResponseWriter
	body      bytes.Buffer
	truncated bool
}

func (w *auditWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *auditWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *auditWriter) capture(b []byte) {
	room := maxAuditBody - w.body.Len()
	if len(b) > room {
		b = b[:room]
		w.truncated = true
	}
	w.body.Write(b)
}

func (w *auditWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求与响应正文; multipart 不记录正文, 超长截断, skipPaths 整体跳过
func AuditMiddleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		reqBody, reqTruncated := captureRequestBody(c)
		log.InfoContext(ctx, "request received",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", decodedQuery(c.Request.URL.RawQuery),
			"req_body", reqBody,
			"req_truncated", reqTruncated,
		)

		w := &auditWriter{ResponseWriter: c.Writer}
		c.Writer = w
		start := time.Now()

		c.Next()

		log.InfoContext(ctx, "response sent",
			"status", w.Status(),
			"latency", time.Since(start),
			"res_body", w.body.String(),
			"res_truncated", w.truncated,
		)
	}
}

// captureRequestBody 读取后放回请求体, 头像等 multipart 上传只记录为空
func captureRequestBody(c *gin.Context) (string, bool) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || strings.HasPrefix(c.ContentType(), "multipart/") {
		return "", false
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return "", false
	}
	if len(raw) > maxAuditBody {
		return string(raw[:maxAuditBody]), true
	}
	return string(raw), false
}

func decodedQuery(raw string) string {
	if q, err := url.QueryUnescape(raw); err == nil {
		return q
	}
	return raw
}
