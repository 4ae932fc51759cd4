package server

import (
	"github.com/aerugo/ancestral-vision/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	apiRoutes.GET("/stats", routes.GetStatsHandler)
	apiRoutes.GET("/persons", routes.GetPersonsHandler)
	apiRoutes.GET("/persons/:id", routes.GetPersonHandler)
	apiRoutes.GET("/search", routes.SearchHandler)
}
