package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Richard-avalos/legendme-login-svc/internal/errs"
)

type googleAuthRequest struct {
	IDToken string `json:"idToken"`
}

type googleAuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
}

func (h *Handler) GoogleAuth(c *gin.Context) {
	var req googleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation("invalid request body"))
		return
	}

	res, err := h.accounts.GoogleAuth(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, googleAuthResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		UserID:       res.UserID,
		Email:        res.Email,
		Name:         res.Name,
	})
}
