package cron

import (
	"Balgil/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	spec            string
	routeSessionJob *job.RouteSessionJob
}

// NewCronManager spec 为带秒字段的表达式, 为空时不注册任务
func NewCronManager(spec string, routeSessionJob *job.RouteSessionJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		spec:            spec,
		routeSessionJob: routeSessionJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.spec == "" {
		log.Warn("route session job disabled, no cron spec configured")
		return nil
	}
	if _, err := s.engine.AddJob(s.spec, s.routeSessionJob); err != nil {
		return err
	}
	return nil
}

// Start 注册任务并启动调度器
func (s *Manager) Start() error {
	if err := s.RegisterJobs(); err != nil {
		return err
	}
	log.Info("Cron 定时任务引擎启动", "entries", len(s.engine.Entries()))
	s.engine.Start()
	return nil
}

// Stop 等待正在运行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
