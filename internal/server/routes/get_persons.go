package routes

import (
	"net/http"

	"github.com/aerugo/ancestral-vision/internal/server/middleware"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/labstack/echo/v4"
)

const defaultPageSize = 100

func GetPersonsHandler(c echo.Context) error {
	type listParams struct {
		Status     string `query:"status" validate:"omitempty,oneof=pending queued processing complete"`
		Generation *int   `query:"generation"`
		Limit      int    `query:"limit" validate:"omitempty,min=1,max=500"`
		Offset     int    `query:"offset" validate:"omitempty,min=0"`
	}

	var params listParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query parameters"})
	}
	if err := c.Validate(&params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if params.Limit == 0 {
		params.Limit = defaultPageSize
	}

	filter := store.PersonFilter{
		Generation: params.Generation,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.Status != "" {
		status := common.PersonStatus(params.Status)
		filter.Status = &status
	}

	ctx := c.Request().Context()
	st := c.(*middleware.AppContext).App.Store

	persons, err := st.ListPersons(ctx, filter)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if persons == nil {
		persons = []common.Person{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"persons": persons,
		"limit":   params.Limit,
		"offset":  params.Offset,
	})
}
