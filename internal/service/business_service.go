package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"posadmin/internal/apierror"
	"posadmin/internal/config"
	"posadmin/internal/dto"
	"posadmin/internal/model"
	"posadmin/internal/repository"
	"posadmin/internal/token"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type BusinessService interface {
	Create(ctx context.Context, actor *token.Claims, req dto.CreateBusinessRequest) (*dto.CreateBusinessResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BusinessResponse, error)
	List(ctx context.Context) ([]dto.BusinessResponse, error)
	Update(ctx context.Context, actor *token.Claims, id uuid.UUID, req dto.UpdateBusinessRequest) (*dto.BusinessResponse, error)
	UpdateStatus(ctx context.Context, actor *token.Claims, id uuid.UUID, status string) error
	Delete(ctx context.Context, actor *token.Claims, id uuid.UUID) error
}

type businessService struct {
	businesses repository.BusinessRepository
	users      repository.UserRepository
	audit      AuditSink
	cfg        *config.Config
}

func NewBusinessService(
	businesses repository.BusinessRepository,
	users repository.UserRepository,
	audit AuditSink,
	cfg *config.Config,
) BusinessService {
	return &businessService{businesses: businesses, users: users, audit: audit, cfg: cfg}
}

// Create registers a business and, when an owner email is supplied,
// bootstraps its owner account with a generated temporary password. The
// password is returned exactly once and never persisted in the clear.
func (s *businessService) Create(ctx context.Context, actor *token.Claims, req dto.CreateBusinessRequest) (*dto.CreateBusinessResponse, error) {
	business := &model.Business{
		Name:     req.Name,
		Currency: req.Currency,
		Timezone: req.Timezone,
		Status:   model.BusinessActive,
	}
	if business.Currency == "" {
		business.Currency = "USD"
	}
	if business.Timezone == "" {
		business.Timezone = "UTC"
	}
	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, err
	}

	resp := &dto.CreateBusinessResponse{Business: dto.NewBusinessResponse(business)}

	if req.OwnerEmail != "" {
		owner, tempPassword, err := s.bootstrapOwner(ctx, business.ID, req)
		if err != nil {
			if err == repository.ErrDuplicateEmail {
				return nil, apierror.ErrEmailExists
			}
			return nil, err
		}
		ownerResp := dto.NewUserResponse(owner)
		resp.Owner = &ownerResp
		resp.TempPassword = tempPassword
	}

	s.record(ctx, actor, &business.ID, "create", "business", business.ID.String(),
		map[string]interface{}{"name": business.Name})
	return resp, nil
}

func (s *businessService) Get(ctx context.Context, id uuid.UUID) (*dto.BusinessResponse, error) {
	business, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrBusinessNotFound
	}
	resp := dto.NewBusinessResponse(business)
	return &resp, nil
}

func (s *businessService) List(ctx context.Context) ([]dto.BusinessResponse, error) {
	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BusinessResponse, len(businesses))
	for i := range businesses {
		resp[i] = dto.NewBusinessResponse(&businesses[i])
	}
	return resp, nil
}

func (s *businessService) Update(ctx context.Context, actor *token.Claims, id uuid.UUID, req dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	business, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrBusinessNotFound
	}
	if req.Name != "" {
		business.Name = req.Name
	}
	if req.Currency != "" {
		business.Currency = req.Currency
	}
	if req.Timezone != "" {
		business.Timezone = req.Timezone
	}
	if err := s.businesses.Update(ctx, business); err != nil {
		return nil, err
	}
	s.record(ctx, actor, &business.ID, "update", "business", business.ID.String(), nil)
	resp := dto.NewBusinessResponse(business)
	return &resp, nil
}

func (s *businessService) UpdateStatus(ctx context.Context, actor *token.Claims, id uuid.UUID, status string) error {
	rows, err := s.businesses.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apierror.ErrBusinessNotFound
	}
	s.record(ctx, actor, &id, "status", "business", id.String(),
		map[string]interface{}{"status": status})
	return nil
}

func (s *businessService) Delete(ctx context.Context, actor *token.Claims, id uuid.UUID) error {
	rows, err := s.businesses.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apierror.ErrBusinessNotFound
	}
	s.record(ctx, actor, &id, "delete", "business", id.String(), nil)
	return nil
}

func (s *businessService) bootstrapOwner(ctx context.Context, businessID uuid.UUID, req dto.CreateBusinessRequest) (*model.User, string, error) {
	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", err
	}
	owner := &model.User{
		BusinessID:   &businessID,
		Email:        req.OwnerEmail,
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
		FirstName:    req.OwnerName,
		Active:       true,
	}
	if err := s.users.Create(ctx, owner); err != nil {
		return nil, "", err
	}
	return owner, tempPassword, nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *businessService) record(ctx context.Context, actor *token.Claims, businessID *uuid.UUID, action, entity, entityID string, payload map[string]interface{}) {
	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		log.Warn().Str("user_id", actor.UserID).Msg("audit: unparseable actor id")
		return
	}
	event := model.AuditEvent{
		BusinessID: businessID,
		UserID:     actorID,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			event.Payload = data
		}
	}
	s.audit.Record(ctx, event)
}
