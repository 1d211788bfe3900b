package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithToken(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) *http.Request {
	t.Helper()

	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	return req
}

func TestAuthRequired(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	handler := jwtauth.Verifier(ja)(AuthRequired(ja)(okHandler()))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := requestWithToken(t, ja, map[string]interface{}{
			"user_id": "u1", "role": "employee", "type": "access",
		})
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := requestWithToken(t, ja, map[string]interface{}{
			"user_id": "u1", "role": "employee", "type": "refresh",
		})
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := jwtauth.New("HS256", []byte("other-secret"), nil)
		rec := httptest.NewRecorder()
		req := requestWithToken(t, other, map[string]interface{}{
			"user_id": "u1", "role": "employee", "type": "access",
		})
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	handler := jwtauth.Verifier(ja)(AuthRequired(ja)(AdminOnly(okHandler())))

	t.Run("admin passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := requestWithToken(t, ja, map[string]interface{}{
			"user_id": "u1", "role": "admin", "type": "access",
		})
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("employee forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := requestWithToken(t, ja, map[string]interface{}{
			"user_id": "u1", "role": "employee", "type": "access",
		})
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
