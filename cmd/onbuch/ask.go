package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vincent-petithory/dataurl"

	"github.com/onbuch/tutor"
	"github.com/onbuch/tutor/goldmark"
	tutorjson "github.com/onbuch/tutor/json"
	"github.com/onbuch/tutor/sqlite"
)

const askLongDesc = `Ask one question and print the reply.

With --history the conversation is read from the file before the call and
written back with the new exchange after it, so successive calls continue
the same conversation. A missing history file starts a new one.

Examples:
  onbuch ask "dessine la courbe de x^2 - 4"
  onbuch ask --image exercice.png "Peux-tu corriger mon exercice ?"
  onbuch ask --profile assistant --history conv.json "Comment réviser ?"`

// plotStride thins the points table printed after a plot reply.
const plotStride = 10

type askCommander struct {
	app         *app
	profile     string
	imagePath   string
	historyPath string
	modelID     string
	width       int
}

func newAskCmd(a *app) *cobra.Command {
	cmder := &askCommander{app: a}

	cmd := &cobra.Command{
		Use:   "ask <message>...",
		Short: "Ask the tutor one question",
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.profile, "profile", "p", tutor.TutorProfile.Name, "Profile: tutor or assistant")
	cmd.Flags().StringVarP(&cmder.imagePath, "image", "i", "", "Path to an image sent with the message")
	cmd.Flags().StringVar(&cmder.historyPath, "history", "", "Path to a conversation history file")
	cmd.Flags().StringVar(&cmder.modelID, "model", "", "Gemini model ID (default: client default)")
	cmd.Flags().IntVar(&cmder.width, "width", 80, "Output width")

	return cmd
}

func (c *askCommander) run(ctx context.Context, out io.Writer, message string) error {
	profile, ok := tutor.LookupProfile(c.profile)
	if !ok {
		return fmt.Errorf("unknown profile %q: must be %q or %q", c.profile, tutor.TutorProfile.Name, tutor.AssistantProfile.Name)
	}

	history, err := loadHistory(c.historyPath, profile.Name)
	if err != nil {
		return err
	}

	image, err := readImage(c.imagePath)
	if err != nil {
		return err
	}

	log := c.app.logger()
	defer log.Sync()

	store, err := sqlite.Open(c.app.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	responder := c.app.newResponder(store, c.app.chatModel(c.modelID), profile, log)
	reply, err := responder.Respond(ctx, tutor.Request{
		Message: message,
		Image:   image,
		History: history.Turns,
	})
	if err != nil {
		return err
	}

	theme := goldmark.DefaultTheme()
	fmt.Fprintln(out, goldmark.Render(reply.Response, c.width, theme))
	if reply.Plot != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, goldmark.RenderPlot(*reply.Plot, plotStride, theme))
	}

	if c.historyPath == "" {
		return nil
	}
	history.Turns = append(history.Turns, tutor.UserTurn(message), tutor.ModelTurn(reply.Response))
	history.UpdatedAt = time.Now()
	if err := tutorjson.Save(c.historyPath, history); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// loadHistory reads the history at path. An empty path or a missing file
// yields an empty history for profile.
func loadHistory(path, profile string) (tutorjson.History, error) {
	empty := tutorjson.History{Profile: profile}
	if path == "" {
		return empty, nil
	}
	h, err := tutorjson.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return empty, nil
	default:
		return tutorjson.History{}, fmt.Errorf("load history: %w", err)
	}
	if h.Profile != "" && h.Profile != profile {
		return tutorjson.History{}, fmt.Errorf("history %s belongs to profile %q, not %q", path, h.Profile, profile)
	}
	h.Profile = profile
	return h, nil
}

// readImage encodes the image at path as a data URI. Empty path means no
// image.
func readImage(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mediaType)
	}
	return dataurl.New(data, mediaType).String(), nil
}
