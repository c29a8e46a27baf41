package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListServices(t *testing.T) {
	w := get(newTestRouter(), "/api/v1/catalog/services")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Name            string  `json:"name"`
			Price           float64 `json:"price"`
			DurationMinutes int     `json:"duration_minutes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 7)
	assert.Equal(t, "Cílios comun", resp.Data[0].Name)
	assert.Equal(t, 25.00, resp.Data[0].Price)
	assert.Equal(t, 30, resp.Data[0].DurationMinutes)
}

func TestListZones(t *testing.T) {
	w := get(newTestRouter(), "/api/v1/catalog/zones")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Label string  `json:"label"`
			Fee   float64 `json:"fee"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 4)
	assert.Equal(t, "Sem taxas", resp.Data[len(resp.Data)-1].Label)
	assert.Zero(t, resp.Data[len(resp.Data)-1].Fee)
}

func TestListSlots(t *testing.T) {
	w := get(newTestRouter(), "/api/v1/catalog/slots")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 9)
	assert.Equal(t, "09:00", resp.Data[0])
}
