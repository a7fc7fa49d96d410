package main

import (
	"errors"
	"fmt"

	"github.com/gdg-garage/charity-api/internal/auth"
	"github.com/gdg-garage/charity-api/internal/database"
	"github.com/spf13/cobra"
)

func seedAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account if the email is not taken",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			db := database.Connect(cfg, logger)
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			created, err := auth.NewAuthHandler(cfg, db, logger).SeedAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", email)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin login email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Admin", "display name")

	return cmd
}
