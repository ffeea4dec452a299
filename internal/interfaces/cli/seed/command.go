package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	permissionApp "github.com/orris-inc/helpdesk/internal/application/permission"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/helpdesk/internal/shared/authorization"
	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var (
	env           string
	adminName     string
	adminEmail    string
	adminPassword string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed roles, permissions and an optional administrator",
		Long: `Create the built-in roles and permissions. With --admin-email and
--admin-password an administrator account is created as well, unless a user
with that email already exists.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().StringVar(&adminName, "admin-name", "Administrator", "Administrator display name")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "Administrator email")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Administrator password")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if (adminEmail == "") != (adminPassword == "") {
		return fmt.Errorf("--admin-email and --admin-password must be given together")
	}

	cfg, log, err := bootstrap.Environment(env)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := bootstrap.SeedPermissions(ctx, database.Get(), log); err != nil {
		return err
	}
	log.Infow("roles and permissions seeded")

	if adminEmail == "" {
		return nil
	}
	return createAdmin(ctx, cmd.OutOrStdout(), cfg, log)
}

func createAdmin(ctx context.Context, out io.Writer, cfg *config.Config, log logger.Interface) error {
	gdb := database.Get()
	userRepo := repository.NewUserRepository(gdb, log)

	exists, err := userRepo.ExistsByEmail(ctx, adminEmail, 0)
	if err != nil {
		return fmt.Errorf("failed to check administrator email: %w", err)
	}
	if exists {
		log.Infow("administrator already exists, skipping", "email", adminEmail)
		return nil
	}

	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	roles := permissionApp.NewService(
		repository.NewRoleRepository(gdb),
		repository.NewPermissionRepository(gdb),
		enforcer,
		log,
	)

	policy := vo.DefaultPasswordPolicy()
	if cfg.Auth.Password.MinLength > 0 {
		policy.MinLength = cfg.Auth.Password.MinLength
	}

	createUser := userUsecases.NewCreateUserUseCase(
		userRepo,
		roles,
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		policy,
		db.NewTransactionManager(gdb),
		log,
	)

	admin, err := createUser.Execute(ctx, userUsecases.CreateUserCommand{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
		Roles:    []string{authorization.RoleAdmin.String()},
	})
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	fmt.Fprintf(out, "Administrator %s created (id %d)\n", admin.Email, admin.ID)
	return nil
}
