package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/transport/http/middleware"
)

// ErrorCase binds a sentinel error to its HTTP status and wire code.
type ErrorCase struct {
	Err     error
	Status  int
	Code    string
	Message string
}

// RespondWithMappedError walks the cases in order and writes the first
// match. Unmatched errors become an opaque 500 so internals never leak.
func RespondWithMappedError(c *gin.Context, log *zap.Logger, err error, cases []ErrorCase) {
	for _, ec := range cases {
		if errors.Is(err, ec.Err) {
			c.JSON(ec.Status, ErrorResponse{
				Code:    ec.Code,
				Message: ec.Message,
				TraceID: middleware.GetTraceID(c),
			})
			return
		}
	}

	if log != nil {
		log.Error("unhandled request error",
			zap.String("trace_id", middleware.GetTraceID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
		TraceID: middleware.GetTraceID(c),
	})
}

func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    code,
		Message: message,
		TraceID: middleware.GetTraceID(c),
	})
}
