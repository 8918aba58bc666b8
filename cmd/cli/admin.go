package main

import (
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/marcelofalero/swse-architech/internal/auth"
	internaldb "github.com/marcelofalero/swse-architech/internal/db"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := internaldb.OpenSQLite(dbPath, "write", 0)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer db.Close()

			if err := internaldb.RunMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "architech.sqlite", "path to the SQLite file")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Derive a password hash suitable for direct DB insertion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var creds auth.CredentialStore
			hash, err := creds.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newIssueTokenCmd() *cobra.Command {
	var (
		secret string
		sub    string
		email  string
		name   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint a session token for a user id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}
			if sub == "" {
				return fmt.Errorf("--sub is required")
			}

			tokens := auth.NewTokenService(nil)
			token, err := tokens.IssueLocal(domain.Claims{
				Sub:   sub,
				Email: email,
				Name:  name,
				Exp:   time.Now().Add(ttl).Unix(),
			}, secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "session signing secret")
	cmd.Flags().StringVar(&sub, "sub", "", "user id to embed as the subject")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.LocalTokenLifetime, "token lifetime")
	return cmd
}
