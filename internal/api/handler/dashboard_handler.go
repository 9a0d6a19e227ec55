package handler

import (
	"Balgil/internal/pkg/response"
	"Balgil/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (s *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	view, err := s.dashboardSvc.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}
