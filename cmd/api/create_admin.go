package main

import (
	"fmt"

	"bakehub/internal/infra/db"
	infraRepo "bakehub/internal/infra/repository"
	"bakehub/internal/usecase"
	auth "bakehub/internal/usecase/auth_usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var adminFlags struct {
	name     string
	email    string
	password string
}

// 管理者はHTTPからは作れない
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bootstrap()
		if err != nil {
			return err
		}
		defer b.close()

		if err := db.Migrate(b.db); err != nil {
			return err
		}

		users := infraRepo.NewUserGormRepository(b.db)
		registerUC := auth.NewRegisterUserUsecase(
			infraRepo.NewTxManagerGorm(b.db),
			users,
			nil,
			auth.NewBcryptPasswordHasher(12),
			usecase.SystemClock{},
			b.log,
		)

		user, err := registerUC.CreateAdmin(cmd.Context(), adminFlags.name, adminFlags.email, adminFlags.password)
		if err != nil {
			if he, ok := usecase.AsHTTPError(err); ok {
				return fmt.Errorf("create admin: %s", he.Message)
			}
			return err
		}
		b.log.Info("admin created", zap.Int64("id", user.ID), zap.String("email", user.Email))
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.name, "name", "Admin", "display name")
	f.StringVar(&adminFlags.email, "email", "", "login email")
	f.StringVar(&adminFlags.password, "password", "", "login password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
