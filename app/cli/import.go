package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AtharvaKhot17/QuickHireAI/config"
	"github.com/AtharvaKhot17/QuickHireAI/internal/logger"
	mongorepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/mongo"
	pgrepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/postgres"
	"github.com/AtharvaKhot17/QuickHireAI/internal/services"
)

var importCandidatesCmd = &cobra.Command{
	Use:   "import-candidates",
	Short: "Import a .xlsx or .csv candidate list into an interview",
	RunE: func(cmd *cobra.Command, args []string) error {
		companyID, _ := cmd.Flags().GetString("company")
		interviewID, _ := cmd.Flags().GetString("interview")
		path, _ := cmd.Flags().GetString("file")

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		if err := config.InitPostgres(); err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer config.ClosePostgres()
		if err := config.InitMongo(); err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer config.CloseMongo(cmd.Context())
		db, err := config.MongoDatabase()
		if err != nil {
			return err
		}

		cfg := config.LoadAppConfig()
		interviewRepo := mongorepo.NewInterviewRepo(db)
		owner := services.NewInterviewService(interviewRepo, cfg.Interview.MaxQuestions)
		svc := services.NewCandidateService(pgrepo.NewCandidateRepo(config.PostgresDB), interviewRepo, owner, nil, logger.New())

		summary, err := svc.Import(cmd.Context(), companyID, interviewID, filepath.Base(path), data)
		if err != nil {
			return err
		}

		fmt.Printf("%-6s  %-28s  %-32s  %s\n", "Code", "Name", "Email", "Role")
		fmt.Println(strings.Repeat("─", 80))
		for _, c := range summary.Imported {
			fmt.Printf("%-6s  %-28s  %-32s  %s\n", c.Code, c.Name, c.Email, c.Role)
		}
		fmt.Printf("\nimported %d, duplicates skipped %d, rejected %d\n",
			len(summary.Imported), summary.Duplicates, len(summary.Errors))
		for _, e := range summary.Errors {
			fmt.Printf("  line %d: %s\n", e.Line, e.Reason)
		}
		return nil
	},
}

func init() {
	importCandidatesCmd.Flags().String("company", "", "Owning company id")
	importCandidatesCmd.Flags().String("interview", "", "Interview id")
	importCandidatesCmd.Flags().String("file", "", "Path to the .xlsx or .csv file")
	_ = importCandidatesCmd.MarkFlagRequired("company")
	_ = importCandidatesCmd.MarkFlagRequired("interview")
	_ = importCandidatesCmd.MarkFlagRequired("file")
}
