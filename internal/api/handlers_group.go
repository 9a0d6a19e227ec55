package api

import "Balgil/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler      *handler.UserHandler
	MessageHandler   *handler.MessageHandler
	CommentHandler   *handler.CommentHandler
	RouteHandler     *handler.RouteHandler
	DashboardHandler *handler.DashboardHandler
	GeoHandler       *handler.GeoHandler
}
