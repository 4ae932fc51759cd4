package routes

import (
	"errors"
	"net/http"

	"github.com/aerugo/ancestral-vision/internal/server/middleware"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func GetPersonHandler(c echo.Context) error {
	type personDetail struct {
		common.Person
		Parents  []common.Person `json:"parents"`
		Children []common.Person `json:"children"`
		Spouses  []common.Person `json:"spouses"`
		Events   []common.Event  `json:"events"`
		Notes    []common.Note   `json:"notes"`
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid person id"})
	}

	ctx := c.Request().Context()
	st := c.(*middleware.AppContext).App.Store

	person, err := st.GetPerson(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "person not found"})
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}

	detail := personDetail{Person: *person}
	if detail.Parents, err = st.GetParents(ctx, id); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if detail.Children, err = st.GetChildren(ctx, id); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if detail.Spouses, err = st.GetSpouses(ctx, id); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if detail.Events, err = st.GetEvents(ctx, id); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}
	if detail.Notes, err = st.GetNotes(ctx, id); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, detail)
}
