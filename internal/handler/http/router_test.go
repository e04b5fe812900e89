package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/hrms-lite/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite/internal/service/employee"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestRouter(t *testing.T, pinger database.Pinger) *chi.Mux {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	if pinger == nil {
		pinger = db
	}

	tx := sqlite.NewTransactor(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewRouter(
		logger,
		[]string{"http://localhost:3000"},
		NewHealthHandler(pinger, "hrms-lite", "test"),
		NewEmployeeHandler(employeeService.NewEmployeeService(tx, employeeRepo, attendanceService.NewPresentDays(attendanceRepo))),
		NewAttendanceHandler(attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo)),
		NewDashboardHandler(dashboardService.NewDashboardService(sqlite.NewDashboardRepository(db))),
	)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 && rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func createEmployee(t *testing.T, router http.Handler, code, email string) map[string]interface{} {
	t.Helper()
	rr, env := doRequest(t, router, http.MethodPost, "/api/employees", map[string]string{
		"employee_id": code,
		"full_name":   "Employee " + code,
		"email":       email,
		"department":  "Engineering",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var emp map[string]interface{}
	decodeData(t, env, &emp)
	return emp
}

func TestRouter_RootAndHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	rr, env := doRequest(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var info map[string]string
	decodeData(t, env, &info)
	assert.Equal(t, "hrms-lite", info["name"])
	assert.Equal(t, "running", info["status"])

	rr, env = doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var health map[string]string
	decodeData(t, env, &health)
	assert.Equal(t, "healthy", health["status"])

	rr, _ = doRequest(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_HealthReportsUnreachableStore(t *testing.T) {
	router := newTestRouter(t, failingPinger{})

	rr, env := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)
}

func TestEmployeeEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	emp := createEmployee(t, router, "E100", "Ann@X.io")
	assert.Equal(t, float64(1), emp["id"])
	assert.Equal(t, "ann@x.io", emp["email"])
	assert.Equal(t, float64(0), emp["total_present_days"])

	t.Run("duplicate employee id", func(t *testing.T) {
		rr, env := doRequest(t, router, http.MethodPost, "/api/employees", map[string]string{
			"employee_id": "E100", "full_name": "Other", "email": "other@x.io", "department": "Eng",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("validation", func(t *testing.T) {
		rr, env := doRequest(t, router, http.MethodPost, "/api/employees", map[string]string{
			"employee_id": "E200", "full_name": "", "email": "nope", "department": "Eng",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "full_name")
		assert.Contains(t, env.Error.Details, "email")
	})

	t.Run("malformed body", func(t *testing.T) {
		rr, env := doRequest(t, router, http.MethodPost, "/api/employees", `{"employee_id":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})

	t.Run("get and list", func(t *testing.T) {
		rr, env := doRequest(t, router, http.MethodGet, "/api/employees/1", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		var got map[string]interface{}
		decodeData(t, env, &got)
		assert.Equal(t, "E100", got["employee_id"])

		rr, env = doRequest(t, router, http.MethodGet, "/api/employees", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		var list []map[string]interface{}
		decodeData(t, env, &list)
		assert.Len(t, list, 1)
	})

	t.Run("unknown and non-numeric ids", func(t *testing.T) {
		rr, _ := doRequest(t, router, http.MethodGet, "/api/employees/99", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr, env := doRequest(t, router, http.MethodGet, "/api/employees/abc", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "id")
	})
}

func TestAttendanceEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)
	createEmployee(t, router, "E100", "ann@x.io")

	rr, env := doRequest(t, router, http.MethodPost, "/api/attendance", map[string]interface{}{
		"employee_id": 1, "date": "2024-01-01", "status": "Present",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created map[string]interface{}
	decodeData(t, env, &created)
	assert.Equal(t, float64(1), created["id"])

	rr, env = doRequest(t, router, http.MethodPost, "/api/attendance", map[string]interface{}{
		"employee_id": 1, "date": "2024-01-01", "status": "absent",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated map[string]interface{}
	decodeData(t, env, &updated)
	assert.Equal(t, float64(1), updated["id"])
	assert.Equal(t, "Absent", updated["status"])

	rr, env = doRequest(t, router, http.MethodGet, "/api/employees/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var emp map[string]interface{}
	decodeData(t, env, &emp)
	assert.Equal(t, float64(0), emp["total_present_days"])

	t.Run("unknown employee", func(t *testing.T) {
		rr, _ := doRequest(t, router, http.MethodPost, "/api/attendance", map[string]interface{}{
			"employee_id": 7, "date": "2024-01-01", "status": "Present",
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr, _ = doRequest(t, router, http.MethodGet, "/api/attendance?employee_id=7", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		rr, env := doRequest(t, router, http.MethodPost, "/api/attendance", map[string]interface{}{
			"employee_id": 1, "date": "2024-01-02", "status": "Sick",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "status")
	})

	t.Run("list with filters", func(t *testing.T) {
		doRequest(t, router, http.MethodPost, "/api/attendance", map[string]interface{}{
			"employee_id": 1, "date": "2024-01-05", "status": "Present",
		})

		rr, env := doRequest(t, router, http.MethodGet, "/api/attendance?employee_id=1&date_from=2024-01-01&date_to=2024-01-31", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var records []map[string]interface{}
		decodeData(t, env, &records)
		require.Len(t, records, 2)
		assert.Equal(t, "2024-01-05", records[0]["date"])
		assert.Equal(t, "2024-01-01", records[1]["date"])
		employee, ok := records[0]["employee"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "E100", employee["employee_id"])

		rr, _ = doRequest(t, router, http.MethodGet, "/api/attendance?date_from=2024-02-01&date_to=2024-01-01", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		rr, _ = doRequest(t, router, http.MethodGet, "/api/attendance?date_from=yesterday", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("get and delete", func(t *testing.T) {
		rr, _ := doRequest(t, router, http.MethodGet, "/api/attendance/1", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr, env := doRequest(t, router, http.MethodDelete, "/api/attendance/1", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)

		rr, _ = doRequest(t, router, http.MethodGet, "/api/attendance/1", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr, _ = doRequest(t, router, http.MethodDelete, "/api/attendance/1", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteEmployee_RemovesAttendance(t *testing.T) {
	router := newTestRouter(t, nil)
	createEmployee(t, router, "E100", "ann@x.io")

	rr, _ := doRequest(t, router, http.MethodPost, "/api/attendance", map[string]interface{}{
		"employee_id": 1, "date": "2024-01-01", "status": "Present",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env := doRequest(t, router, http.MethodDelete, "/api/employees/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, env.Message, "E100")

	rr, _ = doRequest(t, router, http.MethodGet, "/api/attendance?employee_id=1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, env = doRequest(t, router, http.MethodGet, "/api/attendance", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var records []map[string]interface{}
	decodeData(t, env, &records)
	assert.Empty(t, records)

	rr, _ = doRequest(t, router, http.MethodDelete, "/api/employees/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	createEmployee(t, router, "E1", "e1@x.io")
	createEmployee(t, router, "E2", "e2@x.io")
	createEmployee(t, router, "E3", "e3@x.io")

	for _, body := range []map[string]interface{}{
		{"employee_id": 1, "date": "2024-01-01", "status": "Present"},
		{"employee_id": 2, "date": "2024-01-01", "status": "Absent"},
		{"employee_id": 1, "date": "2024-01-02", "status": "Present"},
	} {
		rr, _ := doRequest(t, router, http.MethodPost, "/api/attendance", body)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr, env := doRequest(t, router, http.MethodGet, "/api/dashboard?date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var summary map[string]interface{}
	decodeData(t, env, &summary)
	assert.Equal(t, "2024-01-01", summary["date"])
	assert.Equal(t, float64(3), summary["total_employees"])
	assert.Equal(t, float64(3), summary["total_attendance_records"])
	assert.Equal(t, float64(1), summary["present"])
	assert.Equal(t, float64(1), summary["absent"])
	assert.Equal(t, float64(1), summary["unmarked"])
	assert.Equal(t, "50", summary["attendance_rate"])

	rr, _ = doRequest(t, router, http.MethodGet, "/api/dashboard?date=01-01-2024", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRouter_RejectsNonJSONBodies(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewBufferString("employee_id=E1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}
