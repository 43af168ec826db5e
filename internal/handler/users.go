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

type UserHandler struct {
	auth service.AuthService
}

func NewUserHandler(auth service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.CreateUser(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, resp)
}

func (h *UserHandler) List(c *gin.Context) {
	resp, err := h.auth.ListUsers(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.ErrUserNotFound)
		return
	}
	if err := h.auth.DeactivateUser(c.Request.Context(), middleware.GetClaims(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "user deactivated")
}

func (h *UserHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.ErrUserNotFound)
		return
	}
	if err := h.auth.ReactivateUser(c.Request.Context(), middleware.GetClaims(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "user reactivated")
}
