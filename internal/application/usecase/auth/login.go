package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/domain/user"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/auth"
	"github.com/khoahotran/credably/pkg/logger"
)

var tracer = otel.Tracer("auth_usecase")

// errBadCredentials is shared by the unknown-email and wrong-password paths
// so the response does not reveal which one failed.
var errBadCredentials = apperror.NewUnauthorized("email or password is incorrect", nil)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{userRepo: repo, jwtSvc: jwtSvc, logger: log}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *user.User
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	email := user.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperror.NewInvalidInput("email and password are required", nil)
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		span.RecordError(errBadCredentials)
		return nil, errBadCredentials
	case err != nil:
		span.RecordError(err)
		return nil, err
	}
	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		span.RecordError(errBadCredentials)
		return nil, errBadCredentials
	}

	token, err := uc.jwtSvc.Issue(u.ID)
	if err != nil {
		uc.logger.Error("Failed to issue session token", err, zap.String("user_id", u.ID.String()))
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to issue session token", err)
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	uc.logger.Info("User logged in", zap.String("user_id", u.ID.String()))
	return &LoginOutput{AccessToken: token.Value, ExpiresAt: token.ExpiresAt, User: u}, nil
}

// CurrentUserUseCase resolves the account behind an authenticated request.
type CurrentUserUseCase struct {
	userRepo user.Repository
}

func NewCurrentUserUseCase(repo user.Repository) *CurrentUserUseCase {
	return &CurrentUserUseCase{userRepo: repo}
}

// Execute reports a deleted account as unauthorized, since its token is
// still well formed.
func (uc *CurrentUserUseCase) Execute(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewUnauthorized("account no longer exists", nil)
	}
	return u, err
}
