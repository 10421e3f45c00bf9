package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/khoahotran/credably/internal/config"
)

func runMigrate(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m, err := migrate.New("file://"+dir, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		return fmt.Errorf("unknown direction %q", args[0])
	}
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println(color.YellowString("no change"))
		return nil
	}
	if err != nil {
		return err
	}

	version, dirty, _ := m.Version()
	fmt.Printf("%s schema at version %d (dirty=%v)\n", color.GreenString("migrated"), version, dirty)
	return nil
}
