package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-order-assistant/internal/domain"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/authenticating"
	"github.com/vfg2006/sales-order-assistant/internal/usecases/authenticating/mocks"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		header         string
		setup          func(*mocks.MockAuthenticator)
		expectedStatus int
	}{
		{
			name:           "healthcheck é público",
			path:           "/healthcheck",
			setup:          func(*mocks.MockAuthenticator) {},
			expectedStatus: http.StatusOK,
		},
		{
			name: "autenticação desabilitada libera acesso",
			path: "/v1/query",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(false)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "sem cabeçalho",
			path: "/v1/query",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "sem prefixo Bearer",
			path:   "/v1/query",
			header: "Token abc",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "token rejeitado",
			path:   "/v1/query",
			header: "Bearer abc",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("abc").Return(nil, authenticating.ErrExpiredToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "token válido",
			path:   "/v1/query",
			header: "Bearer abc",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("abc").Return(&domain.Claims{Role: domain.RoleAnalyst}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAnonymousClaims(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected string
	}{
		{appEnv: "", expected: domain.RoleAdmin},
		{appEnv: "dev", expected: domain.RoleAdmin},
		{appEnv: "production", expected: domain.RoleAnalyst},
		{appEnv: "staging", expected: domain.RoleAnalyst},
	}

	for _, tt := range tests {
		t.Run("APP_ENV="+tt.appEnv, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.appEnv)
			assert.Equal(t, tt.expected, AnonymousClaims().Role)
		})
	}
}

func TestAuthMiddleware_DisabledOutsideDevelopmentBlocksAdmin(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthenticator(ctrl)
	auth.EXPECT().Enabled().Return(false).AnyTimes()

	handler := AuthMiddleware(auth)(AdminOnly()(okHandler()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/run", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		expectedStatus int
	}{
		{name: "admin acessa", claims: &domain.Claims{Role: domain.RoleAdmin}, expectedStatus: http.StatusOK},
		{name: "analista é bloqueado", claims: &domain.Claims{Role: domain.RoleAnalyst}, expectedStatus: http.StatusForbidden},
		{name: "sem claims", claims: nil, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)

			req := httptest.NewRequest(http.MethodPost, "/v1/sync/run", nil)
			rec := httptest.NewRecorder()

			handler := AdminOnly()(okHandler())
			if tt.claims != nil {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("abc").Return(tt.claims, nil)
				req.Header.Set("Authorization", "Bearer abc")
				handler = AuthMiddleware(auth)(handler)
			}

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(CorrelationIDHeader, "3f1f5c1e-9d43-4c43-a7f2-5b7a3f1d2e10")

	LoggingMiddleware()(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "3f1f5c1e-9d43-4c43-a7f2-5b7a3f1d2e10", rec.Header().Get(CorrelationIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/query", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	Cors()(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
