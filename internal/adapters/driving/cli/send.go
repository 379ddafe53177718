package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shoplist/internal/core/domain"
)

var sendTheme string

var sendCmd = &cobra.Command{
	Use:   "send [items...]",
	Short: "Email a shopping list to yourself",
	Long: `Render the given items as a picture and email it to the signed-in
Google account. With no arguments, items are read one per line from
standard input. Blank items are skipped; an empty list is still sent.`,
	Example: `  shoplist send Milk Eggs "Brown bread"
  cat list.txt | shoplist send --theme dark`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendTheme, "theme", "", "snapshot theme: light or dark (default: saved theme)")
	rootCmd.AddCommand(sendCmd)
}

// stdin is where items are read from when none are given. Replaced in tests.
var stdin io.Reader = os.Stdin

func runSend(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Dispatch == nil {
		return errors.New("dispatch service not configured")
	}
	reportStartupErrors(cmd, s)

	theme, err := resolveTheme(s)
	if err != nil {
		return err
	}

	raw := args
	if len(raw) == 0 && !stdinIsTerminal() {
		if raw, err = readLines(stdin); err != nil {
			return fmt.Errorf("failed to read items: %w", err)
		}
	}
	list := domain.NewList()
	for _, text := range raw {
		list.Add(text)
	}
	items := list.Items()

	ctx := commandContext(cmd)
	id, err := s.Session.Restore(ctx)
	if err != nil {
		return err
	}

	if err := s.Dispatch.Send(ctx, items, theme); err != nil {
		if errors.Is(err, domain.ErrNotSignedIn) {
			return errors.New("not signed in: run 'shoplist login' first")
		}
		return err
	}

	to := "your inbox"
	if id != nil {
		to = id.Email
	}
	cmd.Printf("Sent %s to %s\n", pluralItems(len(items)), to)
	return nil
}

func resolveTheme(s *Services) (domain.Theme, error) {
	if sendTheme != "" {
		theme := domain.Theme(strings.ToLower(sendTheme))
		if !theme.IsValid() {
			return "", fmt.Errorf("%w: theme must be light or dark, got %q", domain.ErrInvalidInput, sendTheme)
		}
		return theme, nil
	}
	if s.Settings != nil {
		if settings, err := s.Settings.Get(); err == nil && settings.Theme.IsValid() {
			return settings.Theme, nil
		}
	}
	return domain.ThemeLight, nil
}

func stdinIsTerminal() bool {
	f, ok := stdin.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func pluralItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
