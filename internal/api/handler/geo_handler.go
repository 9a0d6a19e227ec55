package handler

import (
	"Balgil/internal/pkg/kakao"
	"Balgil/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

// GeoHandler 透传 Kakao 响应, 不使用统一返回结构
type GeoHandler struct {
	geoSvc service.GeoService
}

func NewGeoHandler(geoSvc service.GeoService) *GeoHandler {
	return &GeoHandler{geoSvc: geoSvc}
}

func (s *GeoHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	res, err := s.geoSvc.Search(c.Request.Context(), query)
	s.write(c, res, err)
}

func (s *GeoHandler) ReverseGeo(c *gin.Context) {
	x, y := c.Query("x"), c.Query("y")
	if x == "" || y == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x and y parameters are required"})
		return
	}
	res, err := s.geoSvc.ReverseGeo(c.Request.Context(), x, y)
	s.write(c, res, err)
}

func (s *GeoHandler) write(c *gin.Context, res *kakao.Result, err error) {
	if err != nil {
		if errors.Is(err, service.ErrParamInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.ErrorContext(c.Request.Context(), "kakao request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding upstream unavailable"})
		return
	}
	c.Data(res.StatusCode, jsonContentType, res.Body)
}
