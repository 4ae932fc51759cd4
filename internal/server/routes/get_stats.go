package routes

import (
	"net/http"

	"github.com/aerugo/ancestral-vision/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetStatsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	st := c.(*middleware.AppContext).App.Store

	stats, err := st.Stats(ctx)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
