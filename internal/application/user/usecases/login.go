package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	sharedvo "github.com/orris-inc/helpdesk/internal/domain/shared/valueobjects"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email     string
	Password  string
	IPAddress string
}

type LoginResult struct {
	User      dto.UserDTO
	Token     string
	ExpiresAt time.Time
}

type LoginUseCase struct {
	userRepo domainUser.Repository
	roles    RoleAssigner
	hasher   domainUser.PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo domainUser.Repository,
	roles RoleAssigner,
	hasher domainUser.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		roles:    roles,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	u, err := uc.userRepo.GetByEmail(ctx, sharedvo.NormalizeEmail(cmd.Email))
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	// same message for unknown email and wrong password
	if u == nil || u.VerifyPassword(cmd.Password, uc.hasher) != nil {
		uc.logger.Warnw("failed login attempt", "email", cmd.Email, "ip", cmd.IPAddress)
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	return issueSession(ctx, u, uc.roles, uc.tokens, uc.logger)
}

func issueSession(ctx context.Context, u *domainUser.User, roles RoleAssigner, tokens TokenIssuer, log logger.Interface) (*LoginResult, error) {
	slugs, err := rolesOf(ctx, roles, u.ID())
	if err != nil {
		log.Errorw("failed to load user roles", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	token, expiresAt, err := tokens.Issue(u.ID(), u.Email().String(), slugs)
	if err != nil {
		log.Errorw("failed to issue token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	log.Infow("user logged in successfully", "user_id", u.ID())

	return &LoginResult{
		User:      dto.ToUserDTO(u, slugs),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
