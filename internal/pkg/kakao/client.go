package kakao

import (
	"Balgil/internal/api/config"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	keywordPath        = "/v2/local/search/keyword.json"
	coordToAddressPath = "/v2/local/geo/coord2address.json"
)

// Result 上游原始响应, 调用方原样透传
type Result struct {
	StatusCode int
	Body       []byte
}

// Client Kakao Local API 客户端
type Client struct {
	http *resty.Client
}

func NewClient(cfg config.KakaoConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Authorization", "KakaoAK "+cfg.RestAPIKey).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{http: client}
}

// SearchKeyword 关键字地点搜索
func (c *Client) SearchKeyword(ctx context.Context, query string) (*Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		Get(keywordPath)
	if err != nil {
		return nil, errors.Wrap(err, "kakao keyword search")
	}
	return &Result{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

// CoordToAddress 坐标转地址, x 为经度, y 为纬度
func (c *Client) CoordToAddress(ctx context.Context, x, y string) (*Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"x": x, "y": y}).
		Get(coordToAddressPath)
	if err != nil {
		return nil, errors.Wrap(err, "kakao coord2address")
	}
	return &Result{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}
