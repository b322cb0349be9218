// Command onbuch runs the OnBuch tutor backend.
//
// Usage:
//
//	GEMINI_API_KEY=... onbuch serve --listen :8080
//	onbuch ask "trace f(x) = x^2 - 1"
//	onbuch ask --profile assistant --history conv.json "Comment réviser ?"
//	onbuch plot "sin(x) / x"
//	onbuch settings set ai.gemini_api_key AIza...
//
// A .env file in the working directory is loaded when present. Environment:
//
//	GEMINI_API_KEY  fallback Gemini key when none is stored in settings
//	ONBUCH_DB       path to the settings database (default: onbuch.db)
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

const defaultDBPath = "onbuch.db"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "onbuch: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Env vars are read here and passed as values.
	a := &app{
		geminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		dbPath:       os.Getenv("ONBUCH_DB"),
	}
	return newRootCmd(a).ExecuteContext(ctx)
}
