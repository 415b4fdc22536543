package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wayfarer-app/wayfarer/pkg/api/routes"
	"github.com/wayfarer-app/wayfarer/pkg/navigator"
)

func SetupServer(listen string, manager *navigator.Manager) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.NavigationRouter(group.Group("/navigation", EnsureValidToken()), manager)

	routes.AccountRouter(group.Group("/account", EnsureValidToken()))

	return webApp.Listen(listen)
}
