package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onbuch/tutor"
	tutorfiber "github.com/onbuch/tutor/fiber"
	"github.com/onbuch/tutor/expr"
	"github.com/onbuch/tutor/sqlite"
)

const serveLongDesc = `Serve the tutor HTTP API.

Routes:
  POST /api/tutor      math tutor, plots "trace ..." requests locally
  POST /api/assistant  general assistant
  POST /api/plot       sample an expression
  GET  /health

Settings are read from the database on every request, so keys and
instructions changed with "onbuch settings set" apply without a restart.`

type serveCommander struct {
	app        *app
	listenAddr string
	modelID    string
}

func newServeCmd(a *app) *cobra.Command {
	cmder := &serveCommander{app: a}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tutor HTTP API",
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cmder.listenAddr, "listen", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&cmder.modelID, "model", "", "Gemini model ID (default: client default)")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	log := c.app.logger()
	defer log.Sync()

	store, err := sqlite.Open(c.app.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	model := c.app.chatModel(c.modelID)
	server := tutorfiber.New(
		tutorfiber.Config{ListenAddr: c.listenAddr},
		c.app.newResponder(store, model, tutor.TutorProfile, log),
		c.app.newResponder(store, model, tutor.AssistantProfile, log),
		tutor.NewSampler(expr.New()),
		log,
	)

	log.Info("onbuch starting",
		zap.String("listen", c.listenAddr),
		zap.String("db", c.app.dbPath),
		zap.Bool("env_api_key", c.app.geminiAPIKey != ""),
	)

	errc := make(chan error, 1)
	go func() { errc <- server.Run() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			return err
		}
		return <-errc
	}
}
