package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// UpdateUserCommand edits a user. An empty Password keeps the current one and
// a nil Roles keeps the current roles.
type UpdateUserCommand struct {
	UserID   uint
	Name     string
	Email    string
	Password string
	Roles    *[]string
}

type UpdateUserUseCase struct {
	userRepo  domainUser.Repository
	roles     RoleAssigner
	hasher    domainUser.PasswordHasher
	policy    *vo.PasswordPolicy
	txManager TransactionManager
	logger    logger.Interface
}

func NewUpdateUserUseCase(
	userRepo domainUser.Repository,
	roles RoleAssigner,
	hasher domainUser.PasswordHasher,
	policy *vo.PasswordPolicy,
	txManager TransactionManager,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:  userRepo,
		roles:     roles,
		hasher:    hasher,
		policy:    policy,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update user use case", "user_id", cmd.UserID)

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %d not found", cmd.UserID))
	}

	if err := u.UpdateProfile(cmd.Name, cmd.Email); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, u.Email().String(), u.ID())
	if err != nil {
		uc.logger.Errorw("failed to check user email", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}
	if exists {
		return nil, emailTaken()
	}

	if cmd.Password != "" {
		password, err := vo.NewPassword(cmd.Password, uc.policy)
		if err != nil {
			return nil, errors.NewFieldValidationError(map[string]string{"password": err.Error()})
		}
		if err := u.SetPassword(password, uc.hasher); err != nil {
			uc.logger.Errorw("failed to hash password", "user_id", cmd.UserID, "error", err)
			return nil, errors.NewInternalError("failed to update user")
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Update(txCtx, u); err != nil {
			return err
		}
		if cmd.Roles != nil {
			return uc.roles.AssignRolesToUser(txCtx, u.ID(), *cmd.Roles)
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		if errors.IsDuplicateError(err) {
			return nil, emailTaken()
		}
		uc.logger.Errorw("failed to update user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	if cmd.Roles != nil {
		if err := uc.roles.SyncUserRoles(ctx, u.ID()); err != nil {
			uc.logger.Errorw("failed to sync user roles to enforcer", "user_id", u.ID(), "error", err)
			return nil, errors.NewInternalError("failed to update user")
		}
	}

	uc.logger.Infow("user updated successfully", "user_id", u.ID(), "roles_changed", cmd.Roles != nil)

	roles, err := rolesOf(ctx, uc.roles, u.ID())
	if err != nil {
		uc.logger.Warnw("failed to reload user roles", "user_id", u.ID(), "error", err)
	}
	out := dto.ToUserDTO(u, roles)
	return &out, nil
}
