package controllers

import (
	"context"
	"errors"
	"koos-service/internal/pkg/exceptions"
	"koos-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// requestContext derives the usecase context from the request so the request
// id and client cancellation carry through.
func requestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeout)
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
