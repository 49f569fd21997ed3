package middlewares

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		session, err := m.SessionService.GetSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx = context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize checks the session role against the casbin policy. Policy paths
// are relative to the versioned API prefix.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		if !ok || session == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRequesterMissing(nil))
			return
		}

		object := strings.TrimPrefix(r.URL.Path, m.basePath())
		allowed, err := m.Enforcer.Enforce(session.Role, object, r.Method)
		if err != nil {
			m.Log.Error("Middlewares.Authorize enforcer error",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrForbiddenRole(err, session.Role))
			return
		}
		if !allowed {
			m.Log.Info("Middlewares.Authorize permission denied",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRoleKey, session.Role),
				zap.String(constvars.LoggingEndpointKey, object),
				zap.String(constvars.LoggingMethodKey, r.Method),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrForbiddenRole(nil, session.Role))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middlewares) basePath() string {
	prefix := strings.Trim(m.InternalConfig.App.EndpointPrefix, "/")
	version := strings.Trim(m.InternalConfig.App.Version, "/")
	return fmt.Sprintf("/%s/%s", prefix, version)
}
