package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palengke/internal/services"
)

func TestEstimateEndpoint(t *testing.T) {
	app := fiber.New()
	NewEstimateHandler(services.NewEstimateService("", nil)).RegisterRoutes(app.Group("/api/v1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/estimate?campus=ADMU&pickup=Gate+3.5", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var estimate services.Estimate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&estimate))
	assert.Equal(t, "Gate 3.5", estimate.Pickup)
	assert.Equal(t, "table", estimate.Source)
	assert.Positive(t, estimate.Fee)
	assert.Positive(t, estimate.EtaMinutes)
}

func TestEstimateEndpoint_DefaultsWhenUnknown(t *testing.T) {
	app := fiber.New()
	NewEstimateHandler(services.NewEstimateService("", nil)).RegisterRoutes(app.Group("/api/v1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/estimate", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var estimate services.Estimate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&estimate))
	assert.Equal(t, "ADMU", estimate.Campus)
	assert.Equal(t, "Gate 2.5", estimate.Pickup)
}
