package cmd

import (
	"context"
	"fmt"
	"strings"
)

func Surahs(dbPath, filter string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		surahs, err := app.Quran.Surahs(ctx)
		if err != nil {
			return app.failed("loading surahs", err)
		}

		filter = strings.ToLower(strings.TrimSpace(filter))
		w := table()
		fmt.Fprintln(w, "#\tENGLISH\tARABIC\tURDU\tVERSES\tREVELATION")
		for _, s := range surahs {
			if filter != "" &&
				!strings.Contains(strings.ToLower(s.NameEnglish), filter) &&
				!strings.Contains(s.NameUrdu, filter) &&
				!strings.Contains(s.NameArabic, filter) {
				continue
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
				s.SurahNumber, s.NameEnglish, s.NameArabic, s.NameUrdu, s.VersesCount, s.RevelationType)
		}
		return w.Flush()
	})
}

func Verses(dbPath string, surahNumber int, bookmarked bool) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		surah, err := app.Quran.Surah(ctx, surahNumber)
		if err != nil {
			return app.failed("loading surah", err)
		}
		verses, err := app.Quran.Verses(ctx, surahNumber)
		if err != nil {
			return app.failed("loading verses", err)
		}

		marked := map[int]bool{}
		if bookmarked && app.Session.IsAuthenticated() {
			ids, err := app.Bookmarks.VerseIds(ctx)
			if err != nil {
				return app.failed("loading bookmarks", err)
			}
			for _, id := range ids {
				marked[id] = true
			}
		}

		fmt.Fprintf(stdout, "%s / %s (%d verses, %s)\n\n", surah.NameArabic, surah.NameEnglish, surah.VersesCount, surah.RevelationType)
		for _, v := range verses {
			mark := ""
			if marked[v.Id] {
				mark = " [bookmarked]"
			}
			fmt.Fprintf(stdout, "(%d)%s [id %d]\n%s\n%s\n", v.VerseNumber, mark, v.Id, v.TextArabic, v.TextUrdu)
			if v.Transliteration != "" {
				fmt.Fprintln(stdout, v.Transliteration)
			}
			fmt.Fprintln(stdout)
		}
		return nil
	})
}

func Search(dbPath, query string, limit int) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		result, err := app.Quran.SearchVerses(ctx, query, limit)
		if err != nil {
			return app.failed("search", err)
		}

		fmt.Fprintf(stdout, "%d result(s) for %q\n\n", result.Total, result.Query)
		w := table()
		fmt.Fprintln(w, "SURAH\tVERSE\tID\tURDU")
		for _, v := range result.Results {
			fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", v.SurahId, v.VerseNumber, v.Id, v.TextUrdu)
		}
		return w.Flush()
	})
}

func Juz(dbPath string, number int) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if number == 0 {
			list, err := app.Quran.JuzList(ctx)
			if err != nil {
				return app.failed("loading juz", err)
			}
			w := table()
			fmt.Fprintln(w, "#\tARABIC\tURDU\tVERSES")
			for _, j := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", j.JuzNumber, j.NameArabic, j.NameUrdu, j.VersesCount)
			}
			return w.Flush()
		}

		juz, err := app.Quran.Juz(ctx, number)
		if err != nil {
			return app.failed("loading juz", err)
		}
		fmt.Fprintf(stdout, "Juz %d %s\n\n", juz.JuzNumber, juz.NameArabic)
		for _, v := range juz.Verses {
			fmt.Fprintf(stdout, "(%d:%d)\n%s\n%s\n\n", v.SurahId, v.VerseNumber, v.TextArabic, v.TextUrdu)
		}
		return nil
	})
}
