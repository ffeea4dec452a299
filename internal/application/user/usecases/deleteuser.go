package usecases

import (
	"context"
	"fmt"

	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type DeleteUserCommand struct {
	ActorID uint
	UserID  uint
}

type DeleteUserUseCase struct {
	userRepo  domainUser.Repository
	roles     RoleAssigner
	txManager TransactionManager
	logger    logger.Interface
}

func NewDeleteUserUseCase(userRepo domainUser.Repository, roles RoleAssigner, txManager TransactionManager, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:  userRepo,
		roles:     roles,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	uc.logger.Infow("executing delete user use case", "user_id", cmd.UserID, "actor_id", cmd.ActorID)

	if cmd.ActorID == cmd.UserID {
		return errors.NewForbiddenError("you cannot delete your own account")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to delete user")
	}
	if u == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user %d not found", cmd.UserID))
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.roles.RemoveUser(txCtx, u.ID()); err != nil {
			return err
		}
		return uc.userRepo.Delete(txCtx, u.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to delete user")
	}

	if err := uc.roles.SyncUserRoles(ctx, u.ID()); err != nil {
		uc.logger.Errorw("failed to remove user from enforcer", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to delete user")
	}

	uc.logger.Infow("user deleted successfully", "user_id", cmd.UserID)
	return nil
}
