// Package cli implements the pointagectl command tree: the terminal
// counterpart of the admin portal's pages, built on the session manager and
// the typed API client. Commands never read the session store directly; the
// manager is the single source of truth for "who is logged in".
package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
	"github.com/SyphaxBN/pointage-admin/pkg/config"
	"github.com/SyphaxBN/pointage-admin/pkg/logger"
	"github.com/SyphaxBN/pointage-admin/pkg/session"
	"github.com/SyphaxBN/pointage-admin/pkg/sessionstore"
)

// Config is the process configuration for pointagectl.
type Config struct {
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	SessionDir string `env:"SESSION_DIR"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
}

// App carries the wired components shared by all commands.
type App struct {
	cfg     Config
	log     *slog.Logger
	client  *apiclient.Client
	manager *session.Manager

	// flags
	apiBaseURL string
	verbose    bool
}

// Execute runs the pointagectl command tree.
func Execute() error {
	app := &App{}
	return newRootCmd(app).Execute()
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pointagectl",
		Short:         "Administer the pointage attendance service",
		Long:          "pointagectl is the terminal admin portal for the attendance (pointage) tracking service:\nmanage accounts, check-in locations and attendance history.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	root.PersistentFlags().StringVar(&app.apiBaseURL, "api", "", "API base URL (overrides API_BASE_URL)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newUsersCmd(app),
		newLocationsCmd(app),
		newHistoryCmd(app),
		newRecentCmd(app),
		newStatsCmd(app),
	)
	return root
}

// init wires config, logger, store, client and manager. It runs once per
// invocation, before any subcommand.
func (a *App) init() error {
	if err := config.Load(&a.cfg); err != nil {
		return err
	}
	if a.apiBaseURL != "" {
		a.cfg.APIBaseURL = a.apiBaseURL
	}

	level := logger.ParseLevel(a.cfg.LogLevel)
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(a.cfg.LogFormat)),
	)

	store, err := sessionstore.NewFileStore(a.cfg.SessionDir)
	if err != nil {
		return err
	}

	a.manager = session.New(
		session.WithStore(store),
		session.WithLogger(a.log),
	)

	a.client, err = apiclient.New(a.cfg.APIBaseURL,
		apiclient.WithCredentials(a.manager),
		apiclient.WithLogger(a.log),
	)
	if err != nil {
		return err
	}
	a.manager.AttachAPI(a.client)
	return nil
}

// requireSession restores the session before an authenticated command and
// fails with a login hint when none exists.
func (a *App) requireSession(ctx context.Context) error {
	a.manager.Refresh(ctx)
	if status, _ := a.manager.Current(); status == session.StatusUnauthenticated {
		return errors.New("not logged in: run `pointagectl login` first")
	}
	return nil
}

// commandError rewraps API failures into the messages the portal shows:
// connectivity problems and expired credentials get a human hint instead of
// a bare status code.
func commandError(err error) error {
	if err == nil {
		return nil
	}
	if session.IsUnreachable(err) {
		return errors.New("server unreachable: check the API base URL and your connection")
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == 401 {
		return errors.New("session expired: run `pointagectl login` again")
	}
	if errors.Is(err, apiclient.ErrAuthenticationRequired) {
		return errors.New("not logged in: run `pointagectl login` first")
	}
	return err
}

func fallback(s, alt string) string {
	if s == "" {
		return alt
	}
	return s
}
