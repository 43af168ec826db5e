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

type BusinessHandler struct {
	businesses service.BusinessService
}

func NewBusinessHandler(businesses service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// Create godoc
// @Summary     Register a business, optionally bootstrapping its owner
// @Tags        businesses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body dto.CreateBusinessRequest true "new business"
// @Success     201 {object} apierror.Response
// @Failure     409 {object} apierror.Response
// @Router      /api/businesses [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	var req dto.CreateBusinessRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.businesses.Create(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, resp)
}

func (h *BusinessHandler) List(c *gin.Context) {
	resp, err := h.businesses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.ErrBusinessNotFound)
		return
	}
	resp, err := h.businesses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.ErrBusinessNotFound)
		return
	}
	var req dto.UpdateBusinessRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.businesses.Update(c.Request.Context(), middleware.GetClaims(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *BusinessHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.ErrBusinessNotFound)
		return
	}
	var req dto.UpdateBusinessStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.businesses.UpdateStatus(c.Request.Context(), middleware.GetClaims(c), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "status updated")
}

func (h *BusinessHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierror.ErrBusinessNotFound)
		return
	}
	if err := h.businesses.Delete(c.Request.Context(), middleware.GetClaims(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "business deleted")
}
