package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/domain/customer"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/authorization"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type RegisterCommand struct {
	Name      string
	Email     string
	Password  string
	Company   string
	Phone     string
	IPAddress string
}

// RegisterUseCase creates a customer-role account and, when none exists yet,
// the matching Customer record so the new user can open tickets.
type RegisterUseCase struct {
	userRepo     domainUser.Repository
	customerRepo customer.Repository
	roles        RoleAssigner
	hasher       domainUser.PasswordHasher
	policy       *vo.PasswordPolicy
	tokens       TokenIssuer
	txManager    TransactionManager
	enabled      bool
	logger       logger.Interface
}

func NewRegisterUseCase(
	userRepo domainUser.Repository,
	customerRepo customer.Repository,
	roles RoleAssigner,
	hasher domainUser.PasswordHasher,
	policy *vo.PasswordPolicy,
	tokens TokenIssuer,
	txManager TransactionManager,
	enabled bool,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		roles:        roles,
		hasher:       hasher,
		policy:       policy,
		tokens:       tokens,
		txManager:    txManager,
		enabled:      enabled,
		logger:       logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*LoginResult, error) {
	if !uc.enabled {
		return nil, errors.NewForbiddenError("registration is disabled")
	}

	uc.logger.Infow("executing register use case", "email", cmd.Email, "ip", cmd.IPAddress)

	u, err := newUserWithPassword(ctx, uc.userRepo, uc.hasher, uc.policy, cmd.Name, cmd.Email, cmd.Password)
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to prepare user", "email", cmd.Email, "error", err)
			return nil, errors.NewInternalError("failed to register")
		}
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, u); err != nil {
			return err
		}
		if err := uc.roles.AssignRolesToUser(txCtx, u.ID(), []string{string(authorization.RoleCustomer)}); err != nil {
			return err
		}

		existing, err := uc.customerRepo.GetByEmail(txCtx, u.Email().String())
		if err != nil || existing != nil {
			return err
		}
		c, err := customer.NewCustomer(customer.Profile{
			Name:    u.Name(),
			Company: cmd.Company,
			Email:   u.Email().String(),
			Phone:   cmd.Phone,
		})
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.customerRepo.Create(txCtx, c)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		if errors.IsDuplicateError(err) {
			return nil, emailTaken()
		}
		uc.logger.Errorw("failed to register user", "email", cmd.Email, "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	if err := uc.roles.SyncUserRoles(ctx, u.ID()); err != nil {
		uc.logger.Errorw("failed to sync user roles to enforcer", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	uc.logger.Infow("user registered successfully", "user_id", u.ID())
	return issueSession(ctx, u, uc.roles, uc.tokens, uc.logger)
}
