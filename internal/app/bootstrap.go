package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/config"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/delivery/http/routes"
	v1 "talent-hub/internal/delivery/http/routes/v1"
	"talent-hub/internal/email"
	"talent-hub/internal/repository"
	"talent-hub/internal/scheduler"
	"talent-hub/internal/ws"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap assembles the whole service: infrastructure container, event
// hub, mailer, deadline scheduler, and the HTTP surface. The returned
// cleanup stops background work and closes connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(container.Logger)
	go hub.Run(hubCtx)
	ws.SetDefaultHub(hub)

	var mailer email.Sender
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPSender(cfg.SMTP)
	} else {
		mailer = &email.LogSender{Logger: container.Logger}
	}

	jobRepo := repository.NewPostgresJobRepository(container.DB)
	sched := scheduler.New(jobRepo, container.Logger)
	if err := sched.Start(cfg.Scheduler.DeadlineSweepSpec); err != nil {
		stopHub()
		_ = container.Close()
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(container.Logger).Middleware())

	registry := routes.NewRegistry(v1.Deps{
		Config: cfg,
		DB:     container.DB,
		Cache:  container.Cache,
		Mailer: mailer,
		WS:     ws.NewHandler(hub, container.Logger),
		Logger: container.Logger,
	})
	registry.Register(f)

	cleanup := func() error {
		sched.Stop()
		stopHub()
		return container.Close()
	}
	return &App{Fiber: f}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
