package router

import (
	"github.com/oksasatya/foodstore-auth/internal/application"
	"github.com/oksasatya/foodstore-auth/internal/container"
	pginfra "github.com/oksasatya/foodstore-auth/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/foodstore-auth/internal/interface/http"
	"github.com/oksasatya/foodstore-auth/internal/router/modules"
	"github.com/oksasatya/foodstore-auth/internal/verification"
)

func buildAuthService() *application.AuthService {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	channels := verification.NewRegistry(
		verification.NewEmailCodeChannel(container.GetMailSender()),
		verification.NewSMSCodeChannel(container.GetSMSVerifier()),
		verification.NewEmailLinkChannel(container.GetMailSender(), container.GetJWT(), cfg.VerifyEmailURL),
	)

	return application.NewAuthService(
		repo,
		channels,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetLogger(),
	)
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	svc := buildAuthService()
	authHandler := handlers.NewAuthHandler(svc, container.GetLogger())
	userHandler := handlers.NewUserHandler(svc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
}
