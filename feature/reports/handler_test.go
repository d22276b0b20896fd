package reports_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authmw "disasterhub/core/middleware/auth"
	"disasterhub/core/token"
	"disasterhub/feature/reports"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, *token.Service) {
	svc, dbMock, _, _, _ := newService(t)
	tokens := token.NewService("test_secret", time.Hour)

	app := fiber.New()
	reports.NewHandler(svc, authmw.New(tokens)).RegisterRoutes(app)
	return app, dbMock, tokens
}

func TestHandleCreateRequiresAuth(t *testing.T) {
	app, _, _ := setupApp(t)

	req := httptest.NewRequest("POST", "/disasters/report",
		strings.NewReader(`{"disaster_id":1,"content":"Water rising"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleCreateMissingFields(t *testing.T) {
	app, _, tokens := setupApp(t)

	raw, err := tokens.Generate(7, "citizen1", "citizen")
	assert.NoError(t, err)

	req := httptest.NewRequest("POST", "/disasters/report",
		strings.NewReader(`{"disaster_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+raw)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleCreateReport(t *testing.T) {
	app, dbMock, tokens := setupApp(t)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	dbMock.ExpectCommit()

	raw, err := tokens.Generate(7, "citizen1", "citizen")
	assert.NoError(t, err)

	req := httptest.NewRequest("POST", "/disasters/report",
		strings.NewReader(`{"disaster_id":1,"content":"Water rising near the bridge"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+raw)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestHandleVerifyImageMissingURL(t *testing.T) {
	app, _, _ := setupApp(t)

	req := httptest.NewRequest("POST", "/disasters/verify-image", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleList(t *testing.T) {
	app, dbMock, _ := setupApp(t)

	dbMock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disaster_id", "user_id", "content", "image_url", "verification_status"}).
			AddRow(1, 2, 7, "Water rising", "", "pending"))

	req := httptest.NewRequest("GET", "/disasters/list/Report", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
