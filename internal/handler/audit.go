package handler

import (
	"net/http"
	"strconv"

	"posadmin/internal/apierror"
	"posadmin/internal/middleware"
	"posadmin/internal/model"
	"posadmin/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// AuditHandler reads the append-only audit trail. There is deliberately no
// write surface here; events are recorded by the worker pool.
type AuditHandler struct {
	audit repository.AuditRepository
}

func NewAuditHandler(audit repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var businessID uuid.UUID
	if claims.Role == model.RoleSuperAdmin {
		id, err := uuid.Parse(c.Query("business_id"))
		if err != nil {
			respondError(c, apierror.ErrBusinessIDRequired)
			return
		}
		businessID = id
	} else {
		if claims.BusinessID == nil {
			respondError(c, apierror.ErrBusinessIDRequired)
			return
		}
		id, err := uuid.Parse(*claims.BusinessID)
		if err != nil {
			respondError(c, apierror.ErrBusinessIDRequired)
			return
		}
		businessID = id
	}

	limit := auditDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}

	events, err := h.audit.ListByBusiness(c.Request.Context(), businessID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, events)
}
