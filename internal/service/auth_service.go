package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"time"

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

// AuditSink records audit events best-effort: implementations must never
// return an error to the caller — a failed write is logged and swallowed.
type AuditSink interface {
	Record(ctx context.Context, event model.AuditEvent)
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)
	Logout(ctx context.Context, refreshToken string)
	Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error
	CreateUser(ctx context.Context, actor *token.Claims, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, actor *token.Claims) ([]dto.UserResponse, error)
	DeactivateUser(ctx context.Context, actor *token.Claims, id uuid.UUID) error
	ReactivateUser(ctx context.Context, actor *token.Claims, id uuid.UUID) error
	ValidateUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

type authService struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	codec  *token.Codec
	audit  AuditSink
	cfg    *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	codec *token.Codec,
	audit AuditSink,
	cfg *config.Config,
) AuthService {
	return &authService{users: users, tokens: tokens, codec: codec, audit: audit, cfg: cfg}
}

// HashRefreshToken is the one-way hash applied to refresh tokens before
// persistence. The raw value is never stored.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Login verifies credentials and issues a fresh token pair. Unknown email,
// wrong password and inactive user all fail with the same error so callers
// cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindActiveByEmail(ctx, req.Email)
	if err != nil {
		log.Debug().Str("email", req.Email).Msg("login: user lookup failed")
		return nil, apierror.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.ErrInvalidCredentials
	}

	access, refresh, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	// Last-login touch and audit are best-effort: their failure never fails
	// the login response.
	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("login: last-login touch failed")
	}
	s.recordAudit(ctx, user, "login", "user", user.ID.String(), nil)

	return &dto.LoginResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.codec.AccessTTL().Seconds()),
	}, nil
}

// Refresh rotates a refresh token: the consumed row is deleted and a new one
// inserted before the new pair is returned. Two concurrent calls with the
// same token race on the delete; the loser sees zero rows and fails with
// InvalidRefreshToken, giving at-most-one-successful-rotation semantics.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	userID, err := s.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		// All codec failures collapse into one response; detail stays in logs.
		log.Debug().Err(err).Msg("refresh: token verification failed")
		return nil, apierror.ErrTokenRefreshFailed
	}

	match, err := s.findStoredToken(ctx, userID, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		log.Debug().Str("user_id", userID.String()).Msg("refresh: user inactive or absent")
		return nil, apierror.ErrTokenRefreshFailed
	}

	rows, err := s.tokens.DeleteByID(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// A concurrent refresh consumed this token first.
		return nil, apierror.ErrInvalidRefreshToken
	}

	access, refresh, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.codec.AccessTTL().Seconds()),
	}, nil
}

// Logout invalidates the matching stored token if one exists. It is
// idempotent and never reports failure: token-validity information must not
// leak through the logout path.
func (s *authService) Logout(ctx context.Context, refreshToken string) {
	userID, err := s.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		return
	}
	match, err := s.findStoredToken(ctx, userID, refreshToken)
	if err != nil {
		return
	}
	if _, err := s.tokens.DeleteByID(ctx, match.ID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("logout: token delete failed")
		return
	}
	// Load the owner so the event lands in its tenant's audit trail.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		user = &model.User{ID: userID}
	}
	s.recordAudit(ctx, user, "logout", "user", userID.String(), nil)
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, apierror.ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		return apierror.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apierror.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.recordAudit(ctx, user, "change_password", "user", user.ID.String(), nil)
	return nil
}

// CreateUser inserts a new account. Non-super_admin actors are confined to
// their own business and may not create a role above their own level.
func (s *authService) CreateUser(ctx context.Context, actor *token.Claims, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if model.RoleLevel(req.Role) > model.RoleLevel(actor.Role) {
		return nil, apierror.ErrInsufficientPermissions
	}

	var businessID *uuid.UUID
	switch {
	case actor.Role == model.RoleSuperAdmin:
		if req.BusinessID != nil {
			id, err := uuid.Parse(*req.BusinessID)
			if err != nil {
				return nil, apierror.ErrBusinessIDRequired
			}
			businessID = &id
		}
	case actor.BusinessID != nil:
		id, err := uuid.Parse(*actor.BusinessID)
		if err != nil {
			return nil, apierror.ErrBusinessIDRequired
		}
		businessID = &id
	}
	// Only platform-level super_admin accounts may have no tenant.
	if req.Role != model.RoleSuperAdmin && businessID == nil {
		return nil, apierror.ErrBusinessIDRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		BusinessID:   businessID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, apierror.ErrEmailExists
		}
		return nil, err
	}

	actorID, _ := uuid.Parse(actor.UserID)
	s.recordAudit(ctx, &model.User{ID: actorID, BusinessID: businessID}, "create", "user", user.ID.String(),
		map[string]interface{}{"email": user.Email, "role": user.Role})

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context, actor *token.Claims) ([]dto.UserResponse, error) {
	var (
		users []model.User
		err   error
	)
	if actor.Role == model.RoleSuperAdmin {
		users, err = s.users.ListAll(ctx)
	} else {
		if actor.BusinessID == nil {
			return nil, apierror.ErrBusinessIDRequired
		}
		id, perr := uuid.Parse(*actor.BusinessID)
		if perr != nil {
			return nil, apierror.ErrBusinessIDRequired
		}
		users, err = s.users.ListByBusiness(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.NewUserResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) DeactivateUser(ctx context.Context, actor *token.Claims, id uuid.UUID) error {
	target, err := s.guardUserAccess(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	actorID, _ := uuid.Parse(actor.UserID)
	s.recordAudit(ctx, &model.User{ID: actorID, BusinessID: target.BusinessID}, "deactivate", "user", id.String(), nil)
	return nil
}

func (s *authService) ReactivateUser(ctx context.Context, actor *token.Claims, id uuid.UUID) error {
	target, err := s.guardUserAccess(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.users.Reactivate(ctx, id); err != nil {
		return err
	}
	actorID, _ := uuid.Parse(actor.UserID)
	s.recordAudit(ctx, &model.User{ID: actorID, BusinessID: target.BusinessID}, "reactivate", "user", id.String(), nil)
	return nil
}

// ValidateUser returns the active user or nil when absent — absence is not
// an error on this path.
func (s *authService) ValidateUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, nil
	}
	return user, nil
}

// CleanupExpiredTokens bulk-deletes refresh-token rows past their expiry.
// Safe to run concurrently with logins and refreshes: rotation deletes and
// re-inserts within one logical operation, so a mid-use row is never expired.
func (s *authService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, time.Now().UTC())
}

func (s *authService) issuePair(ctx context.Context, user *model.User) (access, refresh string, err error) {
	access, err = s.codec.IssueAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.codec.IssueRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	expiresAt := time.Now().UTC().Add(s.codec.RefreshTTL())
	if err = s.tokens.Store(ctx, user.ID, HashRefreshToken(refresh), expiresAt); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// findStoredToken scopes the lookup to the token owner's live rows and
// compares hashes in constant time.
func (s *authService) findStoredToken(ctx context.Context, userID uuid.UUID, raw string) (*model.RefreshToken, error) {
	rows, err := s.tokens.FindValidByUser(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	hash := []byte(HashRefreshToken(raw))
	for i := range rows {
		if subtle.ConstantTimeCompare([]byte(rows[i].TokenHash), hash) == 1 {
			return &rows[i], nil
		}
	}
	return nil, apierror.ErrInvalidRefreshToken
}

func (s *authService) guardUserAccess(ctx context.Context, actor *token.Claims, id uuid.UUID) (*model.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrUserNotFound
	}
	if actor.Role == model.RoleSuperAdmin {
		return target, nil
	}
	if actor.BusinessID == nil || target.BusinessID == nil || *actor.BusinessID != target.BusinessID.String() {
		return nil, apierror.ErrAccessDenied
	}
	if model.RoleLevel(target.Role) > model.RoleLevel(actor.Role) {
		return nil, apierror.ErrInsufficientPermissions
	}
	return target, nil
}

func (s *authService) recordAudit(ctx context.Context, actor *model.User, action, entity, entityID string, payload map[string]interface{}) {
	event := model.AuditEvent{
		BusinessID: actor.BusinessID,
		UserID:     actor.ID,
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
