package routes

import (
	"errors"
	"net/http"

	"github.com/aerugo/ancestral-vision/internal/server/middleware"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/labstack/echo/v4"
)

// SearchHandler embeds the query text and returns the most similar
// completed biographies.
func SearchHandler(c echo.Context) error {
	type searchParams struct {
		Query string `query:"q" validate:"required,min=2"`
		Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
	}

	var params searchParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query parameters"})
	}
	if err := c.Validate(&params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	app := c.(*middleware.AppContext).App
	if app.Oracle == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "similarity search is not configured"})
	}

	ctx := c.Request().Context()
	embedding, err := app.Oracle.GenerateEmbedding(ctx, []byte(params.Query))
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	persons, err := app.Store.SearchByEmbedding(ctx, embedding, params.Limit)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "similarity search is not supported by this store"})
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if persons == nil {
		persons = []common.Person{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"query":   params.Query,
		"persons": persons,
	})
}
