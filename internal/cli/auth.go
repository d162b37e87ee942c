package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SyphaxBN/pointage-admin/pkg/session"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate as an administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return errors.New("an email address is required")
			}

			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("a password is required")
			}

			user, err := app.manager.Login(ctx, email, password)
			if err != nil {
				return loginFailure(err)
			}

			if user != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in; account details will load on the next command.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "administrator email")
	return cmd
}

// loginFailure renders the portal's login error messages: one per rejection
// reason, and a distinct one when the server was never reached.
func loginFailure(err error) error {
	var rejected *session.RejectedError
	if errors.As(err, &rejected) {
		switch rejected.Reason {
		case session.ReasonUnknownEmail:
			return errors.New("this email does not exist in our records")
		case session.ReasonWrongPassword:
			return errors.New("the password you entered is incorrect")
		case session.ReasonInsufficientRole:
			return errors.New("this account does not have administrator rights")
		default:
			return fmt.Errorf("login refused: %s", fallback(rejected.Message, "authentication error"))
		}
	}
	if session.IsUnreachable(err) {
		return errors.New("server unreachable: check the API base URL and your connection")
	}
	return err
}

// readPassword prompts without echo when stdin is a terminal, and falls
// back to a plain line read otherwise (pipes, tests).
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.manager.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			status, user := app.manager.Current()
			if user == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Session status: %s\n", status)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Role:   %s\n", user.Role)
			if user.Avatar != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Avatar: %s\n", user.Avatar)
			}
			return nil
		},
	}
}
