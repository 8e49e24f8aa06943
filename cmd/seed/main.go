package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"equiptrack/internal/config"
	"equiptrack/internal/database"
	"equiptrack/internal/domain/auth"
	"equiptrack/internal/domain/equipment"
	"equiptrack/internal/domain/status"
	"equiptrack/internal/pkg/jwt"
	"equiptrack/internal/pkg/logger"
)

type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func open() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	lg, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: lg, db: db}, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Database maintenance for the equipment reservation service",
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(dictionariesCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(demoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), e.db); err != nil {
				return err
			}
			e.log.Info("migrations applied")
			return nil
		},
	}
}

func dictionariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dictionaries",
		Short: "Seed equipment, reservation and history statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			if err := database.Bootstrap(cmd.Context(), e.db); err != nil {
				return err
			}
			e.log.Info("status dictionaries seeded")
			return nil
		},
	}
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			roleNames, _ := cmd.Flags().GetStringSlice("role")

			roles := make([]auth.Role, 0, len(roleNames))
			for _, r := range roleNames {
				roles = append(roles, auth.Role(r))
			}

			e, err := open()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), e.db); err != nil {
				return err
			}

			svc := auth.NewService(auth.NewRepository(e.db), jwt.New(e.cfg.JWTSecret, e.cfg.JWTTTL), e.log)
			u, err := svc.CreateUser(cmd.Context(), auth.CreateUserRequest{
				Email:    email,
				Password: password,
				Name:     name,
				Roles:    roles,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created user %d (%s) roles=%v\n", u.ID, u.Email, u.RoleNames())
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().StringSlice("role", []string{string(auth.RoleUser)}, "roles: user, studio, admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

var demoEquipment = []equipment.CreateRequest{
	{Name: "Canon EOS R5", SerialNumber: "DEMO-CAM-001", Type: "camera"},
	{Name: "Sony A7 IV", SerialNumber: "DEMO-CAM-002", Type: "camera"},
	{Name: "RF 24-70mm f/2.8", SerialNumber: "DEMO-LENS-001", Type: "lens"},
	{Name: "Godox AD600 Pro", SerialNumber: "DEMO-LIGHT-001", Type: "light"},
	{Name: "Manfrotto 055 Tripod", SerialNumber: "DEMO-TRIPOD-001", Type: "tripod"},
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed dictionaries, demo accounts and demo equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := open()
			if err != nil {
				return err
			}
			if err := database.Bootstrap(ctx, e.db); err != nil {
				return err
			}

			users := auth.NewService(auth.NewRepository(e.db), jwt.New(e.cfg.JWTSecret, e.cfg.JWTTTL), e.log)
			accounts := []auth.CreateUserRequest{
				{Email: "admin@equiptrack.local", Password: "admin123", Name: "Admin", Roles: []auth.Role{auth.RoleAdmin}},
				{Email: "studio@equiptrack.local", Password: "studio123", Name: "Studio", Roles: []auth.Role{auth.RoleStudio}},
				{Email: "user@equiptrack.local", Password: "user123", Name: "User", Roles: []auth.Role{auth.RoleUser}},
			}
			for _, a := range accounts {
				if _, err := users.CreateUser(ctx, a); err != nil && !errors.Is(err, auth.ErrEmailAlreadyExists) {
					return err
				}
			}

			items := equipment.NewService(e.db, equipment.NewRepository(e.db), status.NewDictionary(e.db), e.log)
			for _, req := range demoEquipment {
				if _, err := items.Create(ctx, req); err != nil && !errors.Is(err, equipment.ErrSerialAlreadyExists) {
					return err
				}
			}

			e.log.Info("demo data ready", zap.Int("accounts", len(accounts)), zap.Int("equipment", len(demoEquipment)))
			return nil
		},
	}
}
