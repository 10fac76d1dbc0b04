package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crestline-remodeling/proposal-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(&config.AuthConfig{
		ApiKey:    "test-api-key",
		JWTSecret: "test-secret-key",
		TokenTTL:  60,
	}, zap.NewNop())
}

func authTestHandler(captured **OperatorContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if op, ok := FromContext(r.Context()); ok {
			*captured = op
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_APIKey(t *testing.T) {
	m := newTestMiddleware()

	t.Run("valid key", func(t *testing.T) {
		var op *OperatorContext
		handler := m.Authenticate(authTestHandler(&op))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
		req.Header.Set("x-api-key", "test-api-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, op)
		assert.Equal(t, "system", op.Subject)
		assert.Equal(t, "api_key", op.AuthType)
	})

	t.Run("invalid key", func(t *testing.T) {
		var op *OperatorContext
		handler := m.Authenticate(authTestHandler(&op))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
		req.Header.Set("x-api-key", "wrong-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, op)
	})
}

func TestMiddleware_Bearer(t *testing.T) {
	m := newTestMiddleware()

	t.Run("valid token", func(t *testing.T) {
		token, err := m.Validator().IssueToken("ops@crestline", "Operations")
		require.NoError(t, err)

		var op *OperatorContext
		handler := m.Authenticate(authTestHandler(&op))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, op)
		assert.Equal(t, "ops@crestline", op.Subject)
		assert.Equal(t, "jwt", op.AuthType)
	})

	t.Run("missing header", func(t *testing.T) {
		handler := m.Authenticate(http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		handler := m.Authenticate(http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		handler := m.Authenticate(http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
		req.Header.Set("Authorization", "Bearer bogus.token.here")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
