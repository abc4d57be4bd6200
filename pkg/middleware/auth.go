package middleware

import (
	"context"
	"net/http"
	"strings"

	"inventory-system/internal/authz"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const msgForbidden = "Недостаточно прав для выполнения операции"

// SessionResolver превращает токен в пользователя. Реализуется AuthService.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*services.Principal, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions SessionResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

func deny(c echo.Context, err error, logger *zap.Logger) error {
	return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, msgForbidden, err, nil), logger)
}

// tokenFrom берет токен из "Authorization: Bearer <t>", иначе из ?token=.
func tokenFrom(c echo.Context) (string, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", apperrors.ErrInvalidAuthHeader
		}
		return parts[1], nil
	}
	if token := c.QueryParam("token"); token != "" {
		return token, nil
	}
	return "", apperrors.ErrEmptyAuthHeader
}

// Auth находит пользователя по токену и кладет UserID и роль в контекст запроса.
// Отсутствующий и недействительный токен неразличимы для клиента.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := tokenFrom(c)
		if err != nil {
			m.logger.Debug("AuthMiddleware: токен не передан", zap.Error(err))
			return deny(c, err, m.logger)
		}

		principal, err := m.sessions.ResolveSession(c.Request().Context(), token)
		if err != nil {
			m.logger.Warn("AuthMiddleware: сессия не подтверждена",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return deny(c, err, m.logger)
		}

		ctx := utils.WithPrincipal(c.Request().Context(), principal.UserID, principal.Role)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// Require пропускает запрос, только если роль из контекста имеет возможность capability.
func (m *AuthMiddleware) Require(capability authz.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := utils.GetRoleFromCtx(c.Request().Context())
			if !authz.Can(role, capability) {
				m.logger.Warn("AuthMiddleware: доступ запрещен",
					zap.String("role", role),
					zap.String("capability", string(capability)),
					zap.String("path", c.Path()),
				)
				return deny(c, apperrors.ErrUnauthorized, m.logger)
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) RequireRead() echo.MiddlewareFunc  { return m.Require(authz.Read) }
func (m *AuthMiddleware) RequireWrite() echo.MiddlewareFunc { return m.Require(authz.Write) }
