package controllers

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

func decodeBody(r *http.Request, target interface{}) error {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return exceptions.ErrRequestBodyTooLarge(err, int(tooLarge.Limit>>20))
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func sessionFromRequest(r *http.Request) (*models.Session, error) {
	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		return nil, exceptions.ErrRequesterMissing(nil)
	}
	return session, nil
}

// writeError maps context deadlines to 504 before building the error body.
func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func wantsDownload(r *http.Request) bool {
	download, _ := strconv.ParseBool(r.URL.Query().Get(constvars.QueryDownload))
	return download
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := utils.ParseFlexibleTime(raw)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	return &parsed, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, exceptions.ErrInvalidFormat(err, key)
	}
	return value, nil
}
