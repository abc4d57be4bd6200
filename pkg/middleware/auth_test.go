package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticResolver map[string]*services.Principal

func (r staticResolver) ResolveSession(_ context.Context, token string) (*services.Principal, error) {
	if p, ok := r[token]; ok {
		return p, nil
	}
	return nil, apperrors.ErrUnauthorized
}

func newTestServer() *echo.Echo {
	mw := NewAuthMiddleware(staticResolver{
		"emp":   {UserID: 1, Role: "employee"},
		"teach": {UserID: 2, Role: "teacher"},
		"ghost": {UserID: 3, Role: "guest"},
	}, zap.NewNop())

	e := echo.New()
	whoami := func(c echo.Context) error {
		id, _ := utils.GetUserIDFromCtx(c.Request().Context())
		return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "role": utils.GetRoleFromCtx(c.Request().Context())})
	}
	g := e.Group("/api", mw.Auth)
	g.GET("/things", whoami, mw.RequireRead())
	g.POST("/things", whoami, mw.RequireWrite())
	return e
}

func do(e *echo.Echo, method, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_Matrix(t *testing.T) {
	e := newTestServer()

	cases := []struct {
		name   string
		method string
		target string
		auth   string
		code   int
	}{
		{"без токена", http.MethodGet, "/api/things", "", http.StatusUnauthorized},
		{"чужой токен", http.MethodGet, "/api/things", "Bearer nope", http.StatusUnauthorized},
		{"кривой заголовок", http.MethodGet, "/api/things", "Token emp", http.StatusUnauthorized},
		{"сотрудник читает", http.MethodGet, "/api/things", "Bearer emp", http.StatusOK},
		{"сотрудник пишет", http.MethodPost, "/api/things", "Bearer emp", http.StatusUnauthorized},
		{"преподаватель пишет", http.MethodPost, "/api/things", "Bearer teach", http.StatusOK},
		{"неизвестная роль", http.MethodGet, "/api/things", "Bearer ghost", http.StatusUnauthorized},
		{"токен в query", http.MethodGet, "/api/things?token=emp", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.target, tc.auth)
			assert.Equal(t, tc.code, rec.Code)

			if tc.code == http.StatusUnauthorized {
				var body utils.HTTPResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.False(t, body.Status)
				assert.Equal(t, "Недостаточно прав для выполнения операции", body.Message)
			}
		})
	}
}

func TestAuth_PrincipalInContext(t *testing.T) {
	rec := do(newTestServer(), http.MethodPost, "/api/things", "Bearer teach")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"role":"teacher"}`, rec.Body.String())
}
