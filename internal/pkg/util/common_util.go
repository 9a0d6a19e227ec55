package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var tagRegex = regexp.MustCompile(`#(\S+)`)

var ErrCoordsInvalid = errors.New("coordinates must be \"lon,lat\"")

// ExtractTags 只负责提取去重后的标签列表
func ExtractTags(rawContent string) []string {
	matches := tagRegex.FindAllStringSubmatch(rawContent, -1)

	tagSet := make(map[string]struct{})
	var tags []string

	for _, m := range matches {
		if len(m) > 1 {
			tagName := strings.Trim(m[1], ".,!?~")
			if tagName != "" {
				if _, exists := tagSet[tagName]; !exists {
					tagSet[tagName] = struct{}{}
					tags = append(tags, tagName)
				}
			}
		}
	}

	return tags
}

// TruncateRunes 按字符数截断, 不会切断多字节字符
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// ParseCoords 解析 "lon,lat"
func ParseCoords(s string) (lon, lat float64, err error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, ErrCoordsInvalid
	}
	if lon, err = parseFinite(parts[0]); err != nil {
		return 0, 0, ErrCoordsInvalid
	}
	if lat, err = parseFinite(parts[1]); err != nil {
		return 0, 0, ErrCoordsInvalid
	}
	return lon, lat, nil
}

// ParseFloatList 解析逗号分隔的 n 个浮点数
func ParseFloatList(s string, n int) ([]float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != n {
		return nil, errors.Errorf("expected %d comma separated numbers", n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := parseFinite(p)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// UnixMilli 零值时间返回 0
func UnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func Round(f float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(f*p) / p
}

// PtrInt64 用于将 int64 转换为 *int64
func PtrInt64(i int64) *int64 {
	return &i
}

func PtrString(s string) *string {
	return &s
}
