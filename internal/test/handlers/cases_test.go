package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casework-backend/internal/handlers"
	"casework-backend/internal/middleware"
	"casework-backend/internal/store"
)

func newCasesRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	st := store.New(db)
	h := handlers.NewCasesHandler(st, nil, log)
	resolver := middleware.NewHeaderResolver(st)

	router := gin.New()
	router.POST("/api/cases", middleware.Auth(resolver), h.Create)
	router.GET("/api/cases", h.List)
	router.GET("/api/cases/:id", h.Get)
	router.PUT("/api/cases/:id/accept", h.Accept)
	return router, mock
}

func caseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "theme", "description",
		"cover", "files", "status", "created_at"})
}

func TestGetCase_NotFound(t *testing.T) {
	router, mock := newCasesRouter(t)

	mock.ExpectQuery(`SELECT id, user_id, title, theme`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	req, _ := http.NewRequest(http.MethodGet, "/api/cases/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "case not found")
}

func TestListCases_FilesAlwaysAList(t *testing.T) {
	router, mock := newCasesRouter(t)

	mock.ExpectQuery(`SELECT id, user_id, title, theme`).
		WillReturnRows(caseRows().
			AddRow(int64(1), int64(1), "Logo", "design", "Need a logo", nil, nil, "open", time.Now()).
			AddRow(int64(2), int64(1), "Site", "web", "Landing page", nil, `["/uploads/a.pdf"]`, "open", time.Now()))

	req, _ := http.NewRequest(http.MethodGet, "/api/cases", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, []any{}, out[0]["files"])
	assert.Equal(t, []any{"/uploads/a.pdf"}, out[1]["files"])
}

// Repeated reads of an unchanged record must serialize identically.
func TestGetCase_IdempotentReads(t *testing.T) {
	router, mock := newCasesRouter(t)

	created := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`SELECT id, user_id, title, theme`).
			WithArgs(int64(5)).
			WillReturnRows(caseRows().
				AddRow(int64(5), int64(1), "Logo", "design", "Need a logo",
					nil, `["/uploads/a.pdf"]`, "open", created))
	}

	var bodies []string
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/api/cases/5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		bodies = append(bodies, w.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
}

func TestAcceptCase_Success(t *testing.T) {
	router, mock := newCasesRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, user_id, title, theme`).
		WithArgs(int64(5)).
		WillReturnRows(caseRows().
			AddRow(int64(5), int64(1), "Logo", "design", "Need a logo", nil, nil, "open", time.Now()))
	mock.ExpectQuery(`SELECT email FROM users`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("exec@example.com"))
	mock.ExpectQuery(`INSERT INTO processed_cases`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))
	mock.ExpectExec(`UPDATE cases SET status`).
		WithArgs(int64(5), "accepted").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := bytes.NewReader([]byte(`{"executorId":2}`))
	req, _ := http.NewRequest(http.MethodPut, "/api/cases/5/accept", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"caseId":5}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptCase_MissingExecutor(t *testing.T) {
	router, _ := newCasesRouter(t)

	body := bytes.NewReader([]byte(`{}`))
	req, _ := http.NewRequest(http.MethodPut, "/api/cases/5/accept", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "executorId is required")
}

func TestAcceptCase_AlreadyAccepted(t *testing.T) {
	router, mock := newCasesRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, user_id, title, theme`).
		WithArgs(int64(5)).
		WillReturnRows(caseRows().
			AddRow(int64(5), int64(1), "Logo", "design", "Need a logo", nil, nil, "accepted", time.Now()))
	mock.ExpectRollback()

	body := bytes.NewReader([]byte(`{"executorId":2}`))
	req, _ := http.NewRequest(http.MethodPut, "/api/cases/5/accept", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "case already accepted")
}

func TestCreateCase_Unauthorized(t *testing.T) {
	router, _ := newCasesRouter(t)

	req, _ := http.NewRequest(http.MethodPost, "/api/cases", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
