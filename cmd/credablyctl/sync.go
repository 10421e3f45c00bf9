package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/khoahotran/credably/adapters/persistence"
	"github.com/khoahotran/credably/adapters/provider"
	integrationUC "github.com/khoahotran/credably/internal/application/usecase/integration"
	"github.com/khoahotran/credably/internal/domain/datasync"
)

// runSync calls the providers directly. No evidence event is published, so
// run recalculate afterwards to refresh the score.
func runSync(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	platform, _ := cmd.Flags().GetString("platform")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.findUser(cmd.Context(), email)
	if err != nil {
		return err
	}

	uc := integrationUC.NewIntegrationUseCase(
		persistence.NewPostgresSocialRepo(a.db, a.log),
		persistence.NewPostgresSyncRepo(a.db, a.log),
		persistence.NewPostgresSkillRepo(a.db, a.log),
		provider.NewRegistry(a.cfg, a.log),
		nil, nil, a.log,
	)

	if platform != "" {
		out, err := uc.Sync(cmd.Context(), integrationUC.SyncInput{UserID: u.ID, Platform: platform})
		if err != nil {
			fmt.Printf("%-10s %s\n", platform, color.RedString("failed"))
			return err
		}
		fmt.Printf("%-10s %s followers=%d\n", platform, color.GreenString(string(out.Status.Status)), out.Profile.Followers)
		return nil
	}

	out, err := uc.SyncAll(cmd.Context(), u.ID)
	if err != nil {
		return err
	}
	for _, r := range out.Results {
		status := color.GreenString(string(r.Status))
		if r.Status == datasync.StatusFailed {
			status = color.RedString(string(r.Status))
		}
		fmt.Printf("%-10s %-10s %s\n", r.Platform, status, r.Error)
	}
	fmt.Printf("%d synced, %d failed\n", out.Succeeded, out.Failed)
	return nil
}
