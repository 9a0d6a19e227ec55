package wire

import (
	"Balgil/internal/api"
	"Balgil/internal/api/config"
	"Balgil/internal/api/handler"
	"Balgil/internal/job"
	"Balgil/internal/pkg/cron"
	"Balgil/internal/pkg/kakao"
	"Balgil/internal/pkg/minio"
	"Balgil/internal/pkg/redis"
	"Balgil/internal/repository"
	"Balgil/internal/service"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

// Infra 在 main 中创建的外部连接; Redis 与 Storage 可以为 nil
type Infra struct {
	DB        *gorm.DB
	Redis     *goredis.Client
	Storage   *minio.Storage
	AccessLog io.Writer
}

func BuildApplication(infra *Infra, cfg *config.Config) (*ApplicationContainer, error) {
	db := infra.DB
	store := redis.NewStore(infra.Redis)

	userRepo := repository.NewUserRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	voteRepo := repository.NewVoteRepo(db)
	savedRepo := repository.NewSavedRepo(db)
	routeRepo := repository.NewRouteRepo(db)

	// 避免把 nil *minio.Storage 包成非 nil 接口
	var objectStorage service.ObjectStorage
	if infra.Storage != nil {
		objectStorage = infra.Storage
	}

	userService := service.NewUserService(userRepo, service.NewAvatarProcessor(objectStorage))
	messageService := service.NewMessageService(messageRepo, commentRepo, voteRepo, savedRepo)
	commentService := service.NewCommentService(commentRepo, messageRepo)
	voteService := service.NewVoteService(voteRepo)
	savedService := service.NewSavedService(savedRepo, messageRepo, commentRepo)
	routeService := service.NewRouteService(routeRepo, time.Duration(cfg.Route.SessionGapSeconds)*time.Second)
	dashboardService := service.NewDashboardService(userRepo, routeRepo, messageRepo, commentRepo, savedRepo, store)
	geoService := service.NewGeoService(kakao.NewClient(cfg.Kakao), store, time.Duration(cfg.Kakao.CacheTTLSeconds)*time.Second)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService, messageService, commentService, savedService),
		MessageHandler:   handler.NewMessageHandler(messageService, voteService, savedService),
		CommentHandler:   handler.NewCommentHandler(commentService),
		RouteHandler:     handler.NewRouteHandler(routeService),
		DashboardHandler: handler.NewDashboardHandler(dashboardService),
		GeoHandler:       handler.NewGeoHandler(geoService),
	}

	accessLog := infra.AccessLog
	if accessLog == nil {
		accessLog = io.Discard
	}
	router := api.SetupRouter(handlers, cfg.Server, accessLog)

	cronMgr := cron.NewCronManager(cfg.Route.ConsolidateCron, job.NewRouteSessionJob(routeService, store))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
