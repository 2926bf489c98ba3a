package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modforge-backend/internal/handlers"
)

func dependenciesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/dependencies", handlers.NewDependenciesHandler().Manage)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDependenciesSearch(t *testing.T) {
	router := dependenciesRouter()

	w := postJSON(t, router, "/dependencies", map[string]any{
		"action": "search",
		"query":  "storage",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Applied Energistics 2")
	assert.Contains(t, w.Body.String(), `"totalResults":1`)
}

func TestDependenciesAdd(t *testing.T) {
	router := dependenciesRouter()

	w := postJSON(t, router, "/dependencies", map[string]any{
		"action":   "add",
		"platform": "forge",
		"build_file": "dependencies {\n}",
		"dependency": map[string]string{
			"name":     "JEI",
			"group":    "mezz.jei",
			"artifact": "jei",
			"version":  "15.2.0.27",
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mezz.jei:jei:15.2.0.27")
}

func TestDependenciesAddRequiresDependency(t *testing.T) {
	router := dependenciesRouter()

	w := postJSON(t, router, "/dependencies", map[string]any{
		"action": "add",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDependenciesUnsupportedAction(t *testing.T) {
	router := dependenciesRouter()

	w := postJSON(t, router, "/dependencies", map[string]any{
		"action": "obliterate",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported action")
}

func TestDependenciesList(t *testing.T) {
	router := dependenciesRouter()

	w := postJSON(t, router, "/dependencies", map[string]any{
		"action":     "list",
		"build_file": "dependencies {\n    modImplementation 'mezz.jei:jei:15.2.0.27'\n}",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalDependencies":1`)
}
