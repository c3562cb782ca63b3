package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/rm-hull/quran-reader-client/internal/session"
)

func requireAdmin(app *App) error {
	if err := requireLogin(app); err != nil {
		return err
	}
	if !app.Session.IsAdmin() {
		return fmt.Errorf("%s", session.MsgForbidden)
	}
	return nil
}

func ListUsers(dbPath string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireAdmin(app); err != nil {
			return err
		}

		users, err := app.Users.List(ctx)
		if err != nil {
			return app.failed("loading users", err)
		}

		w := table()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tVERIFIED")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.Id, u.DisplayName(), u.Email, u.Role, u.IsEmailVerified)
		}
		return w.Flush()
	})
}

func SetUserRole(dbPath, id, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("invalid role %q: must be %s or %s", role, models.RoleUser, models.RoleAdmin)
	}

	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireAdmin(app); err != nil {
			return err
		}

		user, err := app.Users.Update(ctx, id, models.UserUpdate{Role: &role})
		if err != nil {
			return app.failed("updating user", err)
		}
		fmt.Fprintf(stdout, "%s is now %s\n", user.DisplayName(), user.Role)
		return nil
	})
}

func RemoveUser(dbPath, id string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireAdmin(app); err != nil {
			return err
		}
		if current := app.Session.User(); current != nil && current.Id == id {
			return fmt.Errorf("refusing to delete the signed-in account, use 'account delete' instead")
		}
		if err := app.Users.Delete(ctx, id); err != nil {
			return app.failed("deleting user", err)
		}
		fmt.Fprintln(stdout, "User deleted.")
		return nil
	})
}

func ChangePassword(dbPath, current, next string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}
		err := app.Users.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
		if err != nil {
			return app.failed("changing password", err)
		}
		fmt.Fprintln(stdout, "Password changed.")
		return nil
	})
}

func UploadAvatar(dbPath, path string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", path)
		}
		defer func() {
			_ = file.Close()
		}()

		resp, err := app.Uploads.Avatar(ctx, filepath.Base(path), file)
		if err != nil {
			return app.failed("avatar upload", err)
		}
		if _, err := app.Session.RefreshUser(ctx); err != nil {
			return app.failed("reloading profile", err)
		}
		fmt.Fprintf(stdout, "Avatar uploaded: %s\n", resp.Url)
		return nil
	})
}

func DeleteAccount(dbPath string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := requireLogin(app); err != nil {
			return err
		}
		if err := app.Users.DeleteAccount(ctx); err != nil {
			return app.failed("deleting account", err)
		}
		if err := app.Session.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Account deleted.")
		return nil
	})
}
