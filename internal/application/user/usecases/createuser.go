package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type CreateUserCommand struct {
	Name     string
	Email    string
	Password string
	Roles    []string
}

// CreateUserUseCase handles the business logic for creating a user
type CreateUserUseCase struct {
	userRepo  domainUser.Repository
	roles     RoleAssigner
	hasher    domainUser.PasswordHasher
	policy    *vo.PasswordPolicy
	txManager TransactionManager
	logger    logger.Interface
}

func NewCreateUserUseCase(
	userRepo domainUser.Repository,
	roles RoleAssigner,
	hasher domainUser.PasswordHasher,
	policy *vo.PasswordPolicy,
	txManager TransactionManager,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:  userRepo,
		roles:     roles,
		hasher:    hasher,
		policy:    policy,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "email", cmd.Email)

	u, err := newUserWithPassword(ctx, uc.userRepo, uc.hasher, uc.policy, cmd.Name, cmd.Email, cmd.Password)
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to prepare user", "email", cmd.Email, "error", err)
			return nil, errors.NewInternalError("failed to create user")
		}
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, u); err != nil {
			return err
		}
		return uc.roles.AssignRolesToUser(txCtx, u.ID(), cmd.Roles)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		if errors.IsDuplicateError(err) {
			return nil, emailTaken()
		}
		uc.logger.Errorw("failed to create user", "email", cmd.Email, "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	if err := uc.roles.SyncUserRoles(ctx, u.ID()); err != nil {
		uc.logger.Errorw("failed to sync user roles to enforcer", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "roles", cmd.Roles)

	roles, err := rolesOf(ctx, uc.roles, u.ID())
	if err != nil {
		uc.logger.Warnw("failed to reload user roles", "user_id", u.ID(), "error", err)
	}
	out := dto.ToUserDTO(u, roles)
	return &out, nil
}

// newUserWithPassword validates input, checks email uniqueness and hashes the password.
func newUserWithPassword(
	ctx context.Context,
	repo domainUser.Repository,
	hasher domainUser.PasswordHasher,
	policy *vo.PasswordPolicy,
	name, email, plain string,
) (*domainUser.User, error) {
	u, err := domainUser.NewUser(name, email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := repo.ExistsByEmail(ctx, u.Email().String(), 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, emailTaken()
	}

	password, err := vo.NewPassword(plain, policy)
	if err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{"password": err.Error()})
	}
	if err := u.SetPassword(password, hasher); err != nil {
		return nil, err
	}
	return u, nil
}

func emailTaken() error {
	return errors.NewFieldValidationError(map[string]string{"email": "email is already taken"})
}
