package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup("debug", true)

	var buf bytes.Buffer
	logrus.SetOutput(&buf)

	r := gin.New()
	r.Use(Middleware())
	r.GET("/v1/ping/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/ping/42", nil)
	r.ServeHTTP(w, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/v1/ping/42", entry["path"])
	assert.Equal(t, "/v1/ping/:id", entry["route"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "warning", entry["level"])
}

func TestSetup_FallsBackToInfo(t *testing.T) {
	Setup("not-a-level", false)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
