package cmd

import (
	"context"
	"fmt"

	"github.com/rm-hull/quran-reader-client/internal/models"
)

func Login(dbPath, email, password string, remember bool) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if email == "" {
			email = app.Session.RememberedEmail()
		}
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required")
		}

		user, err := app.Session.Login(ctx, email, password, remember)
		if err != nil {
			return app.failed("login", err)
		}
		fmt.Fprintf(stdout, "Logged in as %s (%s)\n", user.DisplayName(), user.Role)
		return nil
	})
}

func Logout(dbPath string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := app.Session.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Logged out successfully.")
		return nil
	})
}

func WhoAmI(dbPath string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		user := app.Session.User()
		if user == nil {
			fmt.Fprintln(stdout, "Not logged in.")
			return nil
		}

		w := table()
		fmt.Fprintf(w, "ID\t%s\n", user.Id)
		fmt.Fprintf(w, "Name\t%s\n", user.DisplayName())
		fmt.Fprintf(w, "Email\t%s\n", user.Email)
		fmt.Fprintf(w, "Role\t%s\n", user.Role)
		fmt.Fprintf(w, "Verified\t%t\n", user.IsEmailVerified)
		if last := app.Client.LastRefreshed(); last != nil {
			fmt.Fprintf(w, "Token refreshed\t%s\n", last.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	})
}

func Register(dbPath string, req models.RegisterRequest) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := app.Session.Register(ctx, req); err != nil {
			return app.failed("registration", err)
		}
		fmt.Fprintf(stdout, "Registered %s, check your inbox to verify the address.\n", req.Email)
		return nil
	})
}

func ForgotPassword(dbPath, email string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := app.Auth.ForgotPassword(ctx, email); err != nil {
			return app.failed("password reset request", err)
		}
		fmt.Fprintf(stdout, "If %s is registered, a reset link is on its way.\n", email)
		return nil
	})
}

func ResetPassword(dbPath, token, newPassword string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := app.Auth.ResetPassword(ctx, token, newPassword); err != nil {
			return app.failed("password reset", err)
		}
		fmt.Fprintln(stdout, "Password updated, you can now log in.")
		return nil
	})
}

func VerifyEmail(dbPath, token string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := app.Auth.VerifyEmail(ctx, token); err != nil {
			return app.failed("email verification", err)
		}
		fmt.Fprintln(stdout, "Email verified.")
		return nil
	})
}

func ResendVerification(dbPath, email string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if err := app.Auth.ResendVerification(ctx, email); err != nil {
			return app.failed("verification email", err)
		}
		fmt.Fprintf(stdout, "Verification email sent to %s.\n", email)
		return nil
	})
}

func Theme(dbPath, theme string) error {
	return withApp(dbPath, func(ctx context.Context, app *App) error {
		if theme != "" {
			if err := app.Session.SetTheme(theme); err != nil {
				return err
			}
		}
		fmt.Fprintln(stdout, app.Session.Theme())
		return nil
	})
}
