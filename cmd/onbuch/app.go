package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onbuch/tutor"
	"github.com/onbuch/tutor/expr"
	"github.com/onbuch/tutor/gemini"
	"github.com/onbuch/tutor/logger"
)

// app carries process configuration shared by the subcommands.
type app struct {
	geminiAPIKey string
	dbPath       string
	debug        bool

	// model overrides the Gemini client; nil means gemini.New.
	model tutor.ChatModel
}

func newRootCmd(a *app) *cobra.Command {
	if a.dbPath == "" {
		a.dbPath = defaultDBPath
	}

	cmd := &cobra.Command{
		Use:           "onbuch",
		Short:         "OnBuch math tutor backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", a.dbPath, "Path to the SQLite settings database (env ONBUCH_DB)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newServeCmd(a),
		newAskCmd(a),
		newPlotCmd(),
		newSettingsCmd(a),
	)
	return cmd
}

func (a *app) logger() *zap.Logger {
	return logger.New(a.debug)
}

func (a *app) chatModel(modelID string) tutor.ChatModel {
	if a.model != nil {
		return a.model
	}
	var opts []gemini.Option
	if modelID != "" {
		opts = append(opts, gemini.WithModel(modelID))
	}
	return gemini.New(opts...)
}

// newResponder wires the composer for one profile. Plotting is enabled only
// for profiles that allow it.
func (a *app) newResponder(store tutor.SettingsStore, model tutor.ChatModel, profile tutor.Profile, log *zap.Logger) *tutor.Composer {
	config := tutor.NewSettings(store, profile,
		tutor.WithEnvAPIKey(a.geminiAPIKey),
		tutor.WithSettingsLogger(log),
	)
	opts := []tutor.ComposerOption{
		tutor.WithLogger(log.With(zap.String("profile", profile.Name))),
	}
	if profile.Plotting {
		opts = append(opts, tutor.WithPlotting(tutor.NewKeywordDetector(), tutor.NewSampler(expr.New())))
	}
	return tutor.NewComposer(model, config, opts...)
}
