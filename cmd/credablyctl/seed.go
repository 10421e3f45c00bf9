package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khoahotran/credably/adapters/persistence"
	"github.com/khoahotran/credably/internal/domain/user"
	"github.com/khoahotran/credably/pkg/auth"
)

func runSeedUser(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password are required (or SEED_EMAIL / SEED_PASSWORD)")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("cannot hash password: %w", err)
	}

	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: hash}
	if name != "" {
		u.Name = &name
	}
	if err := persistence.NewPostgresUserRepo(a.db, a.log).Upsert(cmd.Context(), u); err != nil {
		return err
	}

	fmt.Printf("%s user '%s' (%s)\n", color.GreenString("seeded"), email, u.ID)
	return nil
}
