package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rm-hull/quran-reader-client/internal"
	"github.com/rm-hull/quran-reader-client/internal/models"
)

func ListBookmarks(dbPath string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}

		bookmarks, err := app.Bookmarks.List(ctx)
		if err != nil {
			return app.failed("loading bookmarks", err)
		}
		if len(bookmarks) == 0 {
			fmt.Fprintln(stdout, "No bookmarks yet. Start reading and bookmark your favourite verses!")
			return nil
		}

		w := table()
		fmt.Fprintln(w, "ID\tSURAH\tVERSE\tNOTE")
		for _, b := range bookmarks {
			surah, verse := "?", "?"
			if b.Verse != nil {
				verse = fmt.Sprint(b.Verse.VerseNumber)
				surah = fmt.Sprint(b.Verse.SurahId)
				if b.Verse.Surah != nil {
					surah = b.Verse.Surah.NameEnglish
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Id, surah, verse, b.Note)
		}
		return w.Flush()
	})
}

func AddBookmark(dbPath string, verseId int, note string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}

		bookmark, err := app.Bookmarks.Create(ctx, verseId, note)
		if internal.StatusCode(err) == http.StatusConflict {
			fmt.Fprintln(stdout, "This verse is already bookmarked!")
			return nil
		}
		if err != nil {
			return app.failed("adding bookmark", err)
		}
		fmt.Fprintf(stdout, "Bookmark added (%s)\n", bookmark.Id)
		return nil
	})
}

func NoteBookmark(dbPath, id, note string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}
		if _, err := app.Bookmarks.UpdateNote(ctx, id, note); err != nil {
			return app.failed("updating bookmark", err)
		}
		fmt.Fprintln(stdout, "Bookmark updated.")
		return nil
	})
}

func RemoveBookmark(dbPath, id string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}
		if err := app.Bookmarks.Delete(ctx, id); err != nil {
			return app.failed("deleting bookmark", err)
		}
		fmt.Fprintln(stdout, "Bookmark deleted.")
		return nil
	})
}

func Progress(dbPath string, surahNumber, verseId int) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}

		progress := app.Bookmarks.Progress
		if surahNumber > 0 && verseId > 0 {
			progress = func(ctx context.Context) (*models.ReadingProgress, error) {
				return app.Bookmarks.UpdateProgress(ctx, surahNumber, verseId)
			}
		}
		current, err := progress(ctx)
		if err != nil {
			return app.failed("reading progress", err)
		}
		fmt.Fprintf(stdout, "%.1f%% complete. Last read: Surah %d, Verse %d\n",
			current.CompletionPercentage, current.LastSurahNumber, current.LastVerseId)
		return nil
	})
}
