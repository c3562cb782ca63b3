package main

import (
	"log"
	"os"
	"strconv"

	"github.com/rm-hull/quran-reader-client/cmd"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"github.com/spf13/cobra"
)

func main() {
	var err error
	var dbPath string
	var port int
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "quran-reader",
		Short:         "Quran reader API client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/quran_reader.db", "Path to the local token database")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API gateway",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(dbPath, port, debug)
		},
	}
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	rootCmd.AddCommand(apiServerCmd)
	rootCmd.AddCommand(authCommands(&dbPath)...)
	rootCmd.AddCommand(catalogueCommands(&dbPath)...)
	rootCmd.AddCommand(bookmarkCommands(&dbPath))
	rootCmd.AddCommand(userCommands(&dbPath))
	rootCmd.AddCommand(accountCommands(&dbPath))

	if err = rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func authCommands(dbPath *string) []*cobra.Command {
	var email, password string
	var remember bool

	loginCmd := &cobra.Command{
		Use:   "login [--email <email>] [--password <password>]",
		Short: "Sign in and store the session tokens",
		RunE: func(_ *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("QURAN_PASSWORD")
			}
			return cmd.Login(*dbPath, email, password, remember)
		},
	}
	loginCmd.Flags().StringVar(&email, "email", "", "Account email (defaults to the remembered email)")
	loginCmd.Flags().StringVar(&password, "password", "", "Account password (or set QURAN_PASSWORD)")
	loginCmd.Flags().BoolVar(&remember, "remember", true, "Remember the email for next time")

	var register models.RegisterRequest
	registerCmd := &cobra.Command{
		Use:   "register --email <email> --password <password>",
		Short: "Create a new account",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Register(*dbPath, register)
		},
	}
	registerCmd.Flags().StringVar(&register.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&register.Password, "password", "", "Account password")
	registerCmd.Flags().StringVar(&register.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&register.LastName, "last-name", "", "Last name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	return []*cobra.Command{
		loginCmd,
		registerCmd,
		{
			Use:   "logout",
			Short: "Forget the stored session",
			RunE: func(_ *cobra.Command, _ []string) error {
				return cmd.Logout(*dbPath)
			},
		},
		{
			Use:   "whoami",
			Short: "Show the signed-in user",
			RunE: func(_ *cobra.Command, _ []string) error {
				return cmd.WhoAmI(*dbPath)
			},
		},
		{
			Use:   "forgot-password <email>",
			Short: "Request a password reset email",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.ForgotPassword(*dbPath, args[0])
			},
		},
		{
			Use:   "reset-password <token> <new-password>",
			Short: "Set a new password using a reset token",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.ResetPassword(*dbPath, args[0], args[1])
			},
		},
		{
			Use:   "verify-email <token>",
			Short: "Verify an email address",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.VerifyEmail(*dbPath, args[0])
			},
		},
		{
			Use:   "resend-verification <email>",
			Short: "Send the verification email again",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.ResendVerification(*dbPath, args[0])
			},
		},
		{
			Use:   "theme [light|dark]",
			Short: "Show or set the preferred theme",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				theme := ""
				if len(args) == 1 {
					theme = args[0]
				}
				return cmd.Theme(*dbPath, theme)
			},
		},
	}
}

func catalogueCommands(dbPath *string) []*cobra.Command {
	var filter string
	var bookmarked bool
	var limit int

	surahsCmd := &cobra.Command{
		Use:   "surahs [--filter <text>]",
		Short: "List the surahs",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Surahs(*dbPath, filter)
		},
	}
	surahsCmd.Flags().StringVar(&filter, "filter", "", "Only show surahs whose name contains the text")

	versesCmd := &cobra.Command{
		Use:   "verses <surah-number>",
		Short: "Read the verses of a surah",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return cmd.Verses(*dbPath, number, bookmarked)
		},
	}
	versesCmd.Flags().BoolVar(&bookmarked, "bookmarks", true, "Mark bookmarked verses when signed in")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search verses",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Search(*dbPath, args[0], limit)
		},
	}
	searchCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")

	juzCmd := &cobra.Command{
		Use:   "juz [number]",
		Short: "List the juz, or read one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			number := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return err
				}
				number = n
			}
			return cmd.Juz(*dbPath, number)
		},
	}

	return []*cobra.Command{surahsCmd, versesCmd, searchCmd, juzCmd}
}

func bookmarkCommands(dbPath *string) *cobra.Command {
	var note string

	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage bookmarks and reading progress",
	}

	addCmd := &cobra.Command{
		Use:   "add <verse-id> [--note <text>]",
		Short: "Bookmark a verse",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			verseId, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return cmd.AddBookmark(*dbPath, verseId, note)
		},
	}
	addCmd.Flags().StringVar(&note, "note", "", "Optional note")

	bookmarksCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List bookmarks",
			RunE: func(_ *cobra.Command, _ []string) error {
				return cmd.ListBookmarks(*dbPath)
			},
		},
		addCmd,
		&cobra.Command{
			Use:   "note <bookmark-id> <text>",
			Short: "Change the note on a bookmark",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.NoteBookmark(*dbPath, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "rm <bookmark-id>",
			Short: "Delete a bookmark",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.RemoveBookmark(*dbPath, args[0])
			},
		},
		&cobra.Command{
			Use:   "progress [<surah-number> <verse-id>]",
			Short: "Show or record reading progress",
			Args: func(c *cobra.Command, args []string) error {
				if len(args) != 0 && len(args) != 2 {
					return cobra.ExactArgs(2)(c, args)
				}
				return nil
			},
			RunE: func(_ *cobra.Command, args []string) error {
				if len(args) == 0 {
					return cmd.Progress(*dbPath, 0, 0)
				}
				surah, err := strconv.Atoi(args[0])
				if err != nil {
					return err
				}
				verseId, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				return cmd.Progress(*dbPath, surah, verseId)
			},
		},
	)
	return bookmarksCmd
}

func userCommands(dbPath *string) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Administer user accounts (admin only)",
	}
	usersCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all users",
			RunE: func(_ *cobra.Command, _ []string) error {
				return cmd.ListUsers(*dbPath)
			},
		},
		&cobra.Command{
			Use:   "role <user-id> <user|admin>",
			Short: "Change a user's role",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.SetUserRole(*dbPath, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "rm <user-id>",
			Short: "Delete a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.RemoveUser(*dbPath, args[0])
			},
		},
	)
	return usersCmd
}

func accountCommands(dbPath *string) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your own account",
	}
	accountCmd.AddCommand(
		&cobra.Command{
			Use:   "password <current> <new>",
			Short: "Change your password",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.ChangePassword(*dbPath, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "avatar <image-file>",
			Short: "Upload a new avatar",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return cmd.UploadAvatar(*dbPath, args[0])
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Delete your account",
			RunE: func(_ *cobra.Command, _ []string) error {
				return cmd.DeleteAccount(*dbPath)
			},
		},
	)
	return accountCmd
}
