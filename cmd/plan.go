package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/keyz/internal/content"
	"github.com/abhisek/keyz/internal/layout"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/training"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a training plan from recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		settings, err := resolveSettings(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		sessions, err := s.Sessions().List(ctx, settings.User, settings.HistoryWindow)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		cfg := training.DefaultConfig()
		cfg.MaxFocusLetters = settings.MaxFocusLetters
		cfg.WordCount = settings.WordCount
		cfg.SentenceCount = settings.SentenceCount
		gen := training.New(content.NewStaticSource(), training.WithConfig(cfg))

		plan := gen.Generate(settings.User, settings.Layout, sessions, layout.For(settings.Layout))
		if plan == nil {
			fmt.Println("Not enough history to build a plan yet. Complete a few sessions first.")
			return nil
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		}

		fmt.Printf("Level:     %s\n", plan.Difficulty)
		fmt.Printf("Priority:  %s\n", plan.Priority)
		fmt.Printf("Time:      ~%d min\n", plan.EstimatedPracticeTimeMinutes)
		if len(plan.FocusLetters) > 0 {
			fmt.Printf("Focus:     %s\n", strings.Join(plan.FocusLetters, " "))
		}
		fmt.Println()

		fmt.Println("Exercises")
		fmt.Println(strings.Repeat("─", 72))
		for _, ex := range plan.Exercises {
			fmt.Printf("%-26s  %-18s  ~%d min\n", ex.Name, ex.Type, ex.EstimatedTimeMinutes)
			fmt.Printf("    %s\n", ex.Description)
		}

		if len(plan.ErrorPatterns) > 0 {
			fmt.Println()
			fmt.Println("Recurring mistakes")
			fmt.Println(strings.Repeat("─", 72))
			for _, p := range plan.ErrorPatterns {
				fmt.Printf("%-14s  x%-3d  %s\n", p.Type, p.Frequency, p.Description)
			}
		}
		return nil
	},
}

func init() {
	planCmd.Flags().Bool("json", false, "Emit the plan as JSON")
}
