package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aerugo/ancestral-vision/internal/server/middleware"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store/memory"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func newTestContext(t *testing.T, target string) (echo.Context, *memory.FamilyMemStore, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	st := memory.NewFamilyMemStore()

	c := e.NewContext(req, rec)
	return &middleware.AppContext{Context: c, App: &middleware.App{Store: st}}, st, rec
}

func seedPerson(t *testing.T, st *memory.FamilyMemStore, given string, generation int, status common.PersonStatus) *common.Person {
	t.Helper()
	p := &common.Person{
		GivenName: given, Surname: "Hale",
		Gender: common.GenderUnknown, Status: status, Generation: generation,
	}
	if err := st.CreatePerson(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestGetStatsHandler(t *testing.T) {
	c, st, rec := newTestContext(t, "/api/stats")
	seedPerson(t, st, "Clara", 0, common.StatusComplete)
	seedPerson(t, st, "Edward", -1, common.StatusPending)

	if err := GetStatsHandler(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var stats common.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalPersons != 2 {
		t.Errorf("total persons = %d, want 2", stats.TotalPersons)
	}
	if stats.ByStatus[common.StatusPending] != 1 {
		t.Errorf("by status = %v", stats.ByStatus)
	}
}

func TestGetPersonsHandlerFiltersByStatus(t *testing.T) {
	c, st, rec := newTestContext(t, "/api/persons?status=complete")
	seedPerson(t, st, "Clara", 0, common.StatusComplete)
	seedPerson(t, st, "Edward", -1, common.StatusPending)

	if err := GetPersonsHandler(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Persons []common.Person `json:"persons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Persons) != 1 || resp.Persons[0].GivenName != "Clara" {
		t.Errorf("persons = %+v, want just Clara", resp.Persons)
	}
}

func TestGetPersonsHandlerRejectsBadStatus(t *testing.T) {
	c, _, rec := newTestContext(t, "/api/persons?status=bogus")

	if err := GetPersonsHandler(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetPersonHandler(t *testing.T) {
	c, st, rec := newTestContext(t, "/api/persons/ignored")
	clara := seedPerson(t, st, "Clara", 0, common.StatusComplete)
	edward := seedPerson(t, st, "Edward", -1, common.StatusComplete)
	if err := st.AddChildLink(context.Background(), edward.ID, clara.ID); err != nil {
		t.Fatal(err)
	}

	c.SetParamNames("id")
	c.SetParamValues(clara.ID.String())

	if err := GetPersonHandler(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var detail struct {
		common.Person
		Parents []common.Person `json:"parents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.GivenName != "Clara" {
		t.Errorf("given name = %s", detail.GivenName)
	}
	if len(detail.Parents) != 1 || detail.Parents[0].ID != edward.ID {
		t.Errorf("parents = %+v", detail.Parents)
	}
}

func TestGetPersonHandlerNotFound(t *testing.T) {
	c, _, rec := newTestContext(t, "/api/persons/ignored")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := GetPersonHandler(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearchHandlerWithoutOracle(t *testing.T) {
	c, _, rec := newTestContext(t, "/api/search?q=orchard")

	if err := SearchHandler(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
