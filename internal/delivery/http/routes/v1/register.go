// Package v1 wires the versioned API surface: repositories, usecases, and
// handlers assembled per route group.
package v1

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/config"
	"talent-hub/internal/database"
	"talent-hub/internal/delivery/http/handler"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/user"
	"talent-hub/internal/email"
	"talent-hub/internal/infrastructure/cache"
	"talent-hub/internal/pkg/jwt"
	"talent-hub/internal/repository"
	"talent-hub/internal/usecase"
	useruc "talent-hub/internal/usecase/user"
	"talent-hub/internal/ws"
)

// Deps carries the shared infrastructure the route tree is built on.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Mailer email.Sender
	WS     *ws.Handler
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	employeeRepo := repository.NewPostgresEmployeeRepository(deps.DB)
	eligibilityRepo := repository.NewPostgresEligibilityRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)
	referralRepo := repository.NewPostgresReferralRepository(deps.DB)
	analyticsRepo := repository.NewPostgresAnalyticsRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(employeeRepo, jwtSvc)
	userSvc := useruc.NewService(employeeRepo)
	eligibilityUC := usecase.NewEligibilityUsecase(eligibilityRepo, employeeRepo, deps.Mailer, deps.Cache, deps.Logger)
	jobListUC := usecase.NewJobListUsecase(jobRepo, eligibilityRepo, deps.Cache, deps.Logger)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, eligibilityRepo, employeeRepo, deps.Cache, deps.Logger)
	referralUC := usecase.NewReferralUsecase(referralRepo, jobRepo, deps.Cache, deps.Logger)
	hrJobUC := usecase.NewHRJobUsecase(jobRepo, deps.Cache, deps.Logger)
	analyticsUC := usecase.NewAnalyticsUsecase(analyticsRepo, deps.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userSvc)
	eligibilityHandler := handler.NewEligibilityHandler(eligibilityUC)
	jobHandler := handler.NewJobHandler(jobListUC, applicationUC, referralUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	hrEligibilityHandler := handler.NewHREligibilityHandler(eligibilityUC)
	hrJobHandler := handler.NewHRJobHandler(hrJobUC, applicationUC, referralUC)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())
	userHandler.RegisterRoutes(protected.Group("/users"))
	eligibilityHandler.RegisterRoutes(protected.Group("/eligibility"))
	jobHandler.RegisterRoutes(protected.Group("/jobs"))
	applicationHandler.RegisterRoutes(protected.Group("/applications"))

	if deps.WS != nil {
		protected.Get("/ws", deps.WS.HandleEventsWS)
	}

	hr := protected.Group("/hr", authMw.RequireRole(user.RoleHR))
	hrEligibilityHandler.RegisterRoutes(hr.Group("/eligibility"))
	hrJobHandler.RegisterRoutes(hr.Group("/jobs"))
	hr.Patch("/applications/:id/status", hrJobHandler.UpdateApplicationStatus)
	hr.Patch("/referrals/:id/status", hrJobHandler.UpdateReferralStatus)
	analyticsHandler.RegisterRoutes(hr.Group("/analytics"))
}
