package handler

import (
	"net/http"

	"posadmin/internal/apierror"
	"posadmin/internal/dto"
	"posadmin/internal/middleware"
	"posadmin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary     Authenticate with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.LoginRequest true "credentials"
// @Success     200 {object} apierror.Response
// @Failure     401 {object} apierror.Response
// @Router      /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// Refresh godoc
// @Summary     Exchange a refresh token for a new token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.RefreshRequest true "refresh token"
// @Success     200 {object} apierror.Response
// @Failure     401 {object} apierror.Response
// @Router      /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	// Logout succeeds even on a malformed body; there is nothing to leak.
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		h.auth.Logout(c.Request.Context(), req.RefreshToken)
	}
	respondMessage(c, http.StatusOK, "logged out")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(c, apierror.ErrAuthenticationFailed)
		return
	}
	resp, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(c, apierror.ErrAuthenticationFailed)
		return
	}
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "password changed")
}
