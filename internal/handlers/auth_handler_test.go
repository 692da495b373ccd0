package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	h := NewAuthHandler(db)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"email":          "dev@test.local",
		"password":       "supersecret",
		"name":           "Dev",
		"organizationId": 1,
		"role":           "PROJECTMANAGER",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	// The password hash never leaves the server.
	require.NotContains(t, w.Body.String(), "supersecret")

	w = postJSON(t, r, "/auth/login", gin.H{"email": "dev@test.local", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.Token)

	claims, err := auth.ValidateToken(resp.Data.Token)
	require.NoError(t, err)
	require.Equal(t, resp.Data.UserID, claims.UserID)
	require.EqualValues(t, 1, claims.OrganizationID)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"email":          "dev@test.local",
		"password":       "supersecret",
		"name":           "Dev",
		"organizationId": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/auth/login", gin.H{"email": "dev@test.local", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"email":          "dev@test.local",
		"password":       "supersecret",
		"name":           "Dev",
		"organizationId": 1,
		"role":           "WIZARD",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
