package handler

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/response"
	"Balgil/internal/service"

	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	routeSvc service.RouteService
}

func NewRouteHandler(routeSvc service.RouteService) *RouteHandler {
	return &RouteHandler{routeSvc: routeSvc}
}

func (s *RouteHandler) ListUserRoutes(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	list, err := s.routeSvc.ListUserRoutes(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *RouteHandler) SaveRoute(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	var req dto.SaveRouteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	route, err := s.routeSvc.SaveRoute(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, route)
}

// ListTrajectories ?bounds=minLon,minLat,maxLon,maxLat
func (s *RouteHandler) ListTrajectories(c *gin.Context) {
	var q dto.TrajectoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	list, err := s.routeSvc.ListTrajectories(c.Request.Context(), q.Bounds)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
