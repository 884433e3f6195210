package main

import (
	"fmt"

	"farmlend-backend/internal/adapter/repository/mysql"
	"farmlend-backend/internal/config"
	"farmlend-backend/internal/infrastructure/cache"
	"farmlend-backend/internal/infrastructure/db"
	"farmlend-backend/internal/session"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var openDB = func(cfg *config.Config) (*gorm.DB, error) {
	return db.OpenGorm(cfg.MySQLDSN(), cfg.GormLogLevel)
}

// newIssueSessionCmd mints a session token for an existing profile. Real
// sessions come from the auth platform; this is for local development.
func newIssueSessionCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "issue-session",
		Short: "Create a session token for a profile (development only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()

			gdb, err := openDB(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}
			p, err := mysql.NewProfileRepository(gdb).GetByID(ctx, userID)
			if err != nil {
				return fmt.Errorf("profile %s: %w", userID, err)
			}

			rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
			if err != nil {
				return err
			}
			defer rdb.Close()

			s, err := session.NewStore(rdb, cfg.SessionTTL()).Issue(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\texpires %s\n", s.Token, p.Role, s.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "profile id to sign in as")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
