// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/config"
	"github.com/joseluisng17/producthunt-next-replic/internal/database"
)

// accountStore is the subset of *auth.UserStore the users commands need.
type accountStore interface {
	Create(ctx context.Context, email, displayName, password string) (*auth.User, error)
	List(ctx context.Context) ([]*auth.User, error)
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
		Long: `Manage the accounts that can sign in and submit products.

The server must not be running: BadgerDB allows one process per directory.`,
	}
	cmd.AddCommand(newUsersAddCmd(a))
	cmd.AddCommand(newUsersListCmd(a))
	return cmd
}

func newUsersAddCmd(a *app) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Example: `  producthunt users add --email ana@example.com --name Ana --password 'kA9#mzq2'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUserStore(a.cfg, func(users accountStore) error {
				return addUser(cmd.Context(), users, cmd.OutOrStdout(), email, name, password)
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name shown next to submitted products")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUserStore(a.cfg, func(users accountStore) error {
				return listUsers(cmd.Context(), users, cmd.OutOrStdout())
			})
		},
	}
}

// withUserStore opens the database for the duration of fn.
func withUserStore(cfg *config.Config, fn func(accountStore) error) error {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	return fn(auth.NewUserStore(db.Badger(), auth.UserStoreConfig{}))
}

// addUser validates the password against the default policy and creates
// the account. The display name falls back to the email's local part.
func addUser(ctx context.Context, users accountStore, out io.Writer, email, name, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if err := config.DefaultPasswordPolicy().ValidateWithError(password, email); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	u, err := users.Create(ctx, email, name, password)
	if err != nil {
		return fmt.Errorf("create user %s: %w", email, err)
	}
	_, err = fmt.Fprintf(out, "Created user %s (%s) id=%s\n", u.Email, u.DisplayName, u.ID)
	return err
}

func listUsers(ctx context.Context, users accountStore, out io.Writer) error {
	list, err := users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, "No users")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tNAME\tID\tCREATED")
	for _, u := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Email, u.DisplayName, u.ID, u.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
