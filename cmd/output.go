package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/rm-hull/quran-reader-client/internal/session"
)

var stdout io.Writer = os.Stdout

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

// failed logs the underlying error and returns the message a user should see.
func (app *App) failed(action string, err error) error {
	err = app.Session.Guard(err)
	log.Printf("%s failed: %v", action, err)
	return errors.Newf("%s failed: %s", action, session.Describe(err))
}

// withApp runs fn against a bootstrapped App and closes it afterwards.
func withApp(dbPath string, fn func(ctx context.Context, app *App) error) error {
	ctx := context.Background()
	app, err := bootstrap(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("failed to close token store: %v", err)
		}
	}()
	return fn(ctx, app)
}

func requireLogin(app *App) error {
	if !app.Session.IsAuthenticated() {
		return fmt.Errorf("%s (run: quran-reader login)", session.MsgUnauthorized)
	}
	return nil
}
