package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AtharvaKhot17/QuickHireAI/config"
	"github.com/AtharvaKhot17/QuickHireAI/internal/interview"
	"github.com/AtharvaKhot17/QuickHireAI/internal/logger"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Generate one interview question for a skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, _ := cmd.Flags().GetString("skill")
		previous, _ := cmd.Flags().GetStringArray("previous")

		client, log, err := openLLM(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		bank, err := loadBank()
		if err != nil {
			return err
		}
		q := interview.NewGenerator(client.Provider, bank, log).Generate(cmd.Context(), skill, previous)
		return printJSON(q)
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score one answer to a question",
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")

		client, log, err := openLLM(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		eval := interview.NewEvaluator(client.Provider, log).Evaluate(cmd.Context(), question, answer)
		return printJSON(eval)
	},
}

func init() {
	questionCmd.Flags().String("skill", "", "Skill to ask about")
	questionCmd.Flags().StringArray("previous", nil, "Previously asked question (repeatable)")
	_ = questionCmd.MarkFlagRequired("skill")

	evaluateCmd.Flags().String("question", "", "Question text")
	evaluateCmd.Flags().String("answer", "", "Candidate answer")
	_ = evaluateCmd.MarkFlagRequired("question")
}

func openLLM(cmd *cobra.Command) (*llm.Client, *logrus.Logger, error) {
	log := logger.New()
	log.SetOutput(os.Stderr)

	client, err := llm.New(cmd.Context(), config.LoadAppConfig().LLM, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init LLM: %w", err)
	}
	return client, log, nil
}

func loadBank() (*interview.Bank, error) {
	path := config.LoadAppConfig().Interview.QuestionBankPath
	if path == "" {
		return interview.NewBank(nil), nil
	}
	extra, err := config.LoadQuestionBank(path)
	if err != nil {
		return nil, err
	}
	return interview.NewBank(extra), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
