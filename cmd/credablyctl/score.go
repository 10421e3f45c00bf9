package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/khoahotran/credably/adapters/persistence"
	credUC "github.com/khoahotran/credably/internal/application/usecase/credibility"
	"github.com/khoahotran/credably/internal/domain/credibility"
)

func runRecalculate(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.findUser(cmd.Context(), email)
	if err != nil {
		return err
	}

	evidence := credUC.Evidence{
		Profiles:       persistence.NewPostgresProfileRepo(a.db, a.log),
		Skills:         persistence.NewPostgresSkillRepo(a.db, a.log),
		Socials:        persistence.NewPostgresSocialRepo(a.db, a.log),
		Certifications: persistence.NewPostgresCertificationRepo(a.db, a.log),
	}
	calc := credUC.NewCalculateScoreUseCase(evidence, persistence.NewPostgresScoreRepo(a.db, a.log), nil, nil, a.log)

	score, err := calc.Execute(cmd.Context(), credUC.CalculateScoreInput{UserID: u.ID})
	if err != nil {
		return err
	}
	printScore(score)
	return nil
}

func printScore(s *credibility.Score) {
	fmt.Printf("Overall %s  level %s\n", colorScore(s.OverallScore), s.VerificationLevel)
	fmt.Println(strings.Repeat("-", 40))
	for _, c := range credibility.Categories {
		cs := s.Breakdown[c]
		fmt.Printf("%-16s %-6s weight %.2f\n", c, colorScore(cs.Score), cs.Weight)
	}
}

func colorScore(score int) string {
	switch {
	case score >= 75:
		return color.GreenString("%d", score)
	case score >= 60:
		return color.YellowString("%d", score)
	default:
		return color.RedString("%d", score)
	}
}
