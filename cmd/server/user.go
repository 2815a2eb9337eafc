package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"backend-turnero/internal/helper"
	"backend-turnero/internal/models"
)

func newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operator accounts",
	}
	cmd.AddCommand(newUserAddCommand())
	return cmd
}

func newUserAddCommand() *cobra.Command {
	var email, name, password, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an operator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(strings.ToLower(email))
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			if err := helper.CheckRole(role, models.RoleAdmin, models.RoleViewer); err != nil {
				return err
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			ctx := cmd.Context()
			_, db, s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			user := models.User{
				ID:           uuid.NewString(),
				Name:         name,
				Email:        email,
				PasswordHash: string(hash),
				Role:         role,
			}
			if err := s.CreateUser(ctx, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s created (%s)\n", email, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "plain password, stored as bcrypt")
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "admin or visualizador")
	return cmd
}
