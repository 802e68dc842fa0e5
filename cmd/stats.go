package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/keyz/internal/analysis"
	"github.com/abhisek/keyz/internal/layout"
	"github.com/abhisek/keyz/internal/metrics"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/typing"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show typing performance statistics",
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

		window := settings.HistoryWindow
		if last, _ := cmd.Flags().GetInt("last"); last > 0 {
			window = last
		}

		ctx := context.Background()
		sessions, err := s.Sessions().List(ctx, settings.User, window)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		keymap := layout.For(settings.Layout)
		letters := analysis.AnalyzeLetterPerformance(sessions)
		fingers := analysis.AnalyzeFingerPerformance(sessions, letters, keymap)

		var mistakes []typing.MistakeEvent
		for _, sess := range sessions {
			mistakes = append(mistakes, sess.Mistakes...)
		}
		patterns := analysis.AnalyzeErrorPatterns(mistakes, keymap)

		if asJSON {
			report := struct {
				Sessions int                      `json:"sessions"`
				Letters  []typing.LetterAnalytics `json:"letters"`
				Fingers  []typing.FingerAnalytics `json:"fingers"`
				Patterns []typing.ErrorPattern    `json:"patterns"`
			}{len(sessions), letters, fingers, patterns}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printOverview(sessions)
		printLetters(letters)
		printFingers(fingers)
		printPatterns(patterns)
		return nil
	},
}

func printOverview(sessions []typing.TypingSession) {
	var avgWPM, avgAcc, bestWPM int
	for _, s := range sessions {
		avgWPM += s.WPM
		avgAcc += s.Accuracy
		if s.WPM > bestWPM {
			bestWPM = s.WPM
		}
	}
	avgWPM /= len(sessions)
	avgAcc /= len(sessions)
	velocity := metrics.LearningVelocity(sessions)

	fmt.Printf("Sessions:  %d\n", len(sessions))
	fmt.Printf("Avg WPM:   %d (best %d)\n", avgWPM, bestWPM)
	fmt.Printf("Accuracy:  %d%%\n", avgAcc)
	fmt.Printf("Velocity:  %+.1f wpm/session\n", velocity)
	fmt.Println()
}

func printLetters(letters []typing.LetterAnalytics) {
	if len(letters) == 0 {
		return
	}
	fmt.Println("Letters")
	fmt.Println(strings.Repeat("─", 64))
	fmt.Printf("%-6s  %8s  %8s  %9s  %5s  %s\n",
		"Letter", "Attempts", "Accuracy", "Avg ms", "Score", "Priority")
	fmt.Println(strings.Repeat("─", 64))
	for _, l := range letters {
		fmt.Printf("%-6s  %8d  %7d%%  %9.0f  %5d  %s\n",
			l.Letter, l.TotalAttempts, l.Accuracy, l.AverageSpeedMs,
			l.DifficultyScore, l.Recommendation)
	}
	fmt.Println()
}

func printFingers(fingers []typing.FingerAnalytics) {
	if len(fingers) == 0 {
		return
	}
	fmt.Println("Fingers")
	fmt.Println(strings.Repeat("─", 64))
	fmt.Printf("%-14s  %-5s  %8s  %9s  %s\n",
		"Finger", "Hand", "Accuracy", "Avg ms", "Weakest")
	fmt.Println(strings.Repeat("─", 64))
	for _, f := range fingers {
		if f.AverageAccuracy == 0 && f.AverageSpeedMs == 0 {
			continue
		}
		fmt.Printf("%-14s  %-5s  %7d%%  %9.0f  %s\n",
			f.Name, f.Hand, f.AverageAccuracy, f.AverageSpeedMs,
			strings.Join(f.WeakestKeys, " "))
	}
}

func printPatterns(patterns []typing.ErrorPattern) {
	if len(patterns) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recurring mistakes")
	fmt.Println(strings.Repeat("─", 64))
	for _, p := range patterns {
		fmt.Printf("%-14s  x%-4d  %s\n", p.Type, p.Frequency, p.Description)
	}
}

func init() {
	statsCmd.Flags().Bool("json", false, "Emit the full report as JSON")
	statsCmd.Flags().Int("last", 0, "Limit the report to the last N sessions")
}
