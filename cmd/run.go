package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/keyz/internal/app"
	"github.com/abhisek/keyz/internal/config"
	"github.com/abhisek/keyz/internal/content"
	"github.com/abhisek/keyz/internal/layout"
	"github.com/abhisek/keyz/internal/llm"
	sess "github.com/abhisek/keyz/internal/session"
	"github.com/abhisek/keyz/internal/store"
	"github.com/abhisek/keyz/internal/training"
	"github.com/abhisek/keyz/internal/typing"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	settings, err := resolveSettings(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	keymap := layout.For(settings.Layout)

	var source training.ContentSource = content.NewStaticSource()
	if settings.LLMEnabled {
		llmCfg := llm.ConfigFromEnv().WithSelection(settings.LLMProvider, settings.LLMModel)
		provider, err := llm.NewProvider(ctx, llmCfg, st.Events())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Falling back to the built-in word corpus.")
		} else {
			ai := content.NewAISource(provider)
			if err := ai.Prime(ctx, nil); err != nil {
				fmt.Fprintln(os.Stderr, "AI content unavailable:", err)
			}
			source = ai
		}
	}

	cfg := training.DefaultConfig()
	cfg.MaxFocusLetters = settings.MaxFocusLetters
	cfg.WordCount = settings.WordCount
	cfg.SentenceCount = settings.SentenceCount
	gen := training.New(source, training.WithConfig(cfg))

	opts := app.Options{
		Sessions:  st.Sessions(),
		Recorder:  sess.NewRecorder(keymap),
		Generator: gen,
		Source:    source,
		Settings:  settings,
	}

	if f := cmd.Flags().Lookup("drill"); f != nil && f.Value.String() != "" {
		ex, err := findExercise(ctx, st.Sessions(), gen, settings, f.Value.String())
		if err != nil {
			return err
		}
		opts.StartExercise = ex
	}

	return app.Run(opts)
}

// findExercise generates the current training plan and picks the exercise
// with the given ID, so `play --drill` can jump straight into it.
func findExercise(ctx context.Context, repo store.SessionRepo, gen *training.Generator, settings config.Settings, id string) (*typing.CustomExercise, error) {
	sessions, err := repo.List(ctx, settings.User, settings.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	plan := gen.Generate(settings.User, settings.Layout, sessions, layout.For(settings.Layout))
	if plan == nil {
		return nil, fmt.Errorf("no training plan yet: complete a few sessions first")
	}
	ids := make([]string, 0, len(plan.Exercises))
	for i := range plan.Exercises {
		if plan.Exercises[i].ID == id {
			return &plan.Exercises[i], nil
		}
		ids = append(ids, plan.Exercises[i].ID)
	}
	return nil, fmt.Errorf("unknown exercise %q (available: %s)", id, strings.Join(ids, ", "))
}
