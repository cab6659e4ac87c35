package service

import (
	"context"
	"time"

	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/pkg/apperrors"
	"notes-sharing-be/internal/pkg/logger"
	"notes-sharing-be/internal/pkg/token"
	"notes-sharing-be/internal/repository/specification"
	"notes-sharing-be/internal/repository/unitofwork"
	"notes-sharing-be/pkg/events"
	"notes-sharing-be/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Signup(ctx context.Context, request *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, request *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	tokens     *token.Service
	eventBus   *nats.Publisher
	logger     logger.ILogger
}

// NewAuthService wires the identity operations. eventBus may be nil when the
// NATS bus is unreachable; auth then runs without emitting events.
func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokens *token.Service,
	eventBus *nats.Publisher,
	logger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		tokens:     tokens,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (s *authService) Signup(ctx context.Context, request *dto.SignupRequest) (*dto.SignupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: request.Username})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.Validation(apperrors.FieldError{
			Field:   "username",
			Message: "username is already taken",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("auth_service", "user signed up", map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})
	s.emit(ctx, "USER_SIGNUP", user.Id)

	return &dto.SignupResponse{Id: user.Id}, nil
}

func (s *authService) Login(ctx context.Context, request *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: request.Username})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	// Same response whether the username or the password is wrong.
	if user == nil {
		return nil, apperrors.Unauthorized("Unauthorized - Wrong username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, apperrors.Unauthorized("Unauthorized - Wrong username or password")
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.Id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("auth_service", "user logged in", map[string]interface{}{
		"user_id": user.Id.String(),
	})
	s.emit(ctx, "USER_LOGIN", user.Id)

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	userId, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired refresh token.")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user == nil {
		return nil, apperrors.Unauthorized("Invalid or expired refresh token.")
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &dto.RefreshTokenResponse{AccessToken: accessToken}, nil
}

func (s *authService) emit(ctx context.Context, eventType string, userId uuid.UUID) {
	if s.eventBus == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       map[string]interface{}{"user_id": userId.String()},
		OccurredAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("auth_service", "failed to publish auth event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
