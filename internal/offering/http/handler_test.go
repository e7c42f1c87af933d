package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelleauto/dealership-backend/internal/offering"
)

func setupRouter(t *testing.T, admin gin.HandlerFunc) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), offering.NewService(offering.NewPgxRepository(mock)), admin)
	return r, mock
}

func allow(c *gin.Context) { c.Next() }

func TestListOfferings(t *testing.T) {
	r, mock := setupRouter(t, allow)
	now := gofakeit.Date()

	mock.ExpectQuery(`FROM public.cleaning_offerings ORDER BY created_at ASC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(gofakeit.UUID(), "Full valet", "", now, now))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/cleaning-offerings", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Full valet")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRoutesUseMiddleware(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	r, mock := setupRouter(t, deny)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/service-offerings", bytes.NewBufferString(`{"name":"MOT"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOffering_NotFound(t *testing.T) {
	r, mock := setupRouter(t, allow)
	id := gofakeit.UUID()

	mock.ExpectQuery(`UPDATE public.service_offerings SET`).
		WithArgs("MOT", "", id).
		WillReturnError(pgx.ErrNoRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/service-offerings/"+id, bytes.NewBufferString(`{"name":"MOT"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
