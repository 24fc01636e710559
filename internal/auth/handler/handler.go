package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Richard-avalos/legendme-login-svc/internal/auth/account"
	"github.com/Richard-avalos/legendme-login-svc/internal/errs"
	"github.com/Richard-avalos/legendme-login-svc/internal/logger"
)

type Handler struct {
	accounts *account.Service
}

func NewHandler(accounts *account.Service) *Handler {
	return &Handler{accounts: accounts}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/google", h.GoogleAuth)
}

// respondError maps business errors to their carried status and stable
// code. Anything unrecognized is a 500 with the details kept in logs.
func respondError(c *gin.Context, err error) {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", map[string]any{
				"path":  c.FullPath(),
				"code":  appErr.Code,
				"error": err.Error(),
			})
		}
		c.JSON(appErr.Status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	logger.Error("unhandled error", map[string]any{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	c.JSON(errs.ErrInternal.Status, gin.H{
		"code":    errs.ErrInternal.Code,
		"message": errs.ErrInternal.Message,
	})
}
