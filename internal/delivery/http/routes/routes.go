package routes

import (
	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/delivery/http/handler"
	v1 "talent-hub/internal/delivery/http/routes/v1"
)

type Registry struct {
	deps v1.Deps
}

func NewRegistry(deps v1.Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(r.deps.DB).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)
}
