package api

import (
	"Balgil/internal/api/config"
	"Balgil/internal/api/middleware"
	"Balgil/internal/pkg/logger"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const pingPath = "/api/ping"

func SetupRouter(group *HandlersGroup, cfg config.ServerConfig, accessLog io.Writer) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS, 健康检查不记录
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware(pingPath))
	r.Use(middleware.CORSMiddleware(cfg.AllowOrigins))
	logger.SetupGin(r, accessLog, pingPath)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		usersGroup := apiGroup.Group("/users/:user_id")
		{
			usersGroup.GET("", group.UserHandler.GetProfile)
			usersGroup.POST("", group.UserHandler.UpdateProfile)
			usersGroup.PUT("", group.UserHandler.UpdateProfile)
			usersGroup.POST("/avatar", group.UserHandler.UploadAvatar)
			usersGroup.GET("/messages", group.UserHandler.ListMessages)
			usersGroup.GET("/comments", group.UserHandler.ListComments)
			usersGroup.GET("/saved", group.UserHandler.ListSaved)
			usersGroup.GET("/routes", group.RouteHandler.ListUserRoutes)
			usersGroup.POST("/routes", group.RouteHandler.SaveRoute)
		}

		// 前端沿用的单数路径
		apiGroup.GET("/user/:user_id/dashboard", group.DashboardHandler.GetDashboard)

		messageGroup := apiGroup.Group("/messages")
		{
			messageGroup.GET("", group.MessageHandler.ListMessages)
			messageGroup.POST("", group.MessageHandler.CreateMessage)
			messageGroup.GET("/by-address", group.MessageHandler.GetByAddress)
			messageGroup.PUT("/:message_id", group.MessageHandler.UpdateMessage)
			messageGroup.DELETE("/:message_id", group.MessageHandler.DeleteMessage)
			messageGroup.GET("/:message_id/detail", group.MessageHandler.GetDetail)
			messageGroup.POST("/:message_id/vote", group.MessageHandler.Vote)
			messageGroup.POST("/:message_id/comments", group.CommentHandler.CreateComment)
			messageGroup.POST("/:message_id/save", group.MessageHandler.SaveMessage)
			messageGroup.DELETE("/:message_id/save", group.MessageHandler.UnsaveMessage)
		}

		apiGroup.DELETE("/comments/:comment_id", group.CommentHandler.DeleteComment)
		apiGroup.GET("/trajectories", group.RouteHandler.ListTrajectories)

		apiGroup.GET("/search", group.GeoHandler.Search)
		apiGroup.GET("/reverse-geo", group.GeoHandler.ReverseGeo)
	}

	return r
}
