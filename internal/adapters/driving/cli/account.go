package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Sign in with your Google account so lists can be sent from and to
your own address. A browser window opens for consent; if it does not,
open the printed link yourself. The sign-in is remembered for next time.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the saved sign-in",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the remembered Google account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	reportStartupErrors(cmd, s)

	prompt := func(url string) {
		cmd.Println("Opening your browser to sign in. If it does not open, visit:")
		cmd.Println()
		cmd.Printf("  %s\n", url)
		cmd.Println()
	}

	id, err := s.Session.SignIn(commandContext(cmd), prompt)
	if err != nil {
		if errors.Is(err, domain.ErrMissingClientConfig) {
			return errors.New("credentials.json not found: download the OAuth client file from Google Cloud Console and place it next to shoplist or in resources.dir")
		}
		return err
	}
	cmd.Printf("Signed in as %s\n", id.Email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if err := s.Session.SignOut(commandContext(cmd)); err != nil {
		cmd.PrintErrf("Warning: saved sign-in could not be removed: %v\n", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	reportStartupErrors(cmd, s)

	id, err := s.Session.Restore(commandContext(cmd))
	if err != nil {
		return err
	}
	if id == nil {
		cmd.Println("Not signed in.")
		return nil
	}
	cmd.Printf("Signed in as %s\n", id.Email)
	return nil
}

// reportStartupErrors prints wiring problems that headless commands survive.
func reportStartupErrors(cmd *cobra.Command, s *Services) {
	for _, err := range s.StartupErrors {
		cmd.PrintErrf("Warning: %v\n", err)
	}
}
