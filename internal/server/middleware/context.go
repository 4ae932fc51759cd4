package middleware

import (
	"github.com/aerugo/ancestral-vision/pkg/ai"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/labstack/echo/v4"
)

// App carries the process-level collaborators handlers need.
type App struct {
	Store  store.FamilyStore
	Oracle ai.OracleClient
}

type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request context with the application
// collaborators.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
