package resources_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"disasterhub/feature/resources"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	svc := resources.NewService(db, &captureHub{}, nil, zap.NewNop())

	app := fiber.New()
	resources.NewHandler(svc).RegisterRoutes(app)
	return app, mock
}

func TestHandleNearbyMissingCoords(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/resources/1/resources", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleNearby(t *testing.T) {
	app, mock := setupApp(t)

	mock.ExpectQuery(`SELECT \* FROM get_nearby_resources`).
		WillReturnRows(resourceRows().
			AddRow(1, 1, "Red Cross Shelter", "", "shelter", "Brooklyn", 40.68, -73.94, time.Now()))

	req := httptest.NewRequest("GET", "/resources/1/resources?lat=40.6782&lon=-73.9442", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandleCreateMissingFields(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("POST", "/resources",
		strings.NewReader(`{"disaster_id":1,"title":"Shelter"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
