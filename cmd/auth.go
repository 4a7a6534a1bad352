package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jfmyers9/dzr/internal/account"
	"github.com/jfmyers9/dzr/internal/callback"
	"github.com/jfmyers9/dzr/internal/config"
	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

var (
	authListen bool
	authReset  bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize dzr against your Deezer account",
	Long: `Authorize dzr to act on your Deezer account.

This command will guide you through the Deezer authorization process:
1. You'll be prompted for your application id, secret and redirect URL
2. A browser URL will be provided for you to authorize the application
3. After authorization, the access token is saved to your config file

With --listen, dzr serves the redirect URL itself and picks up the code
from the browser. Otherwise paste the URL you were redirected to.

You can register an application at: https://developers.deezer.com/myapps`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how requests are authenticated",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Deezer.AccessToken = ""
		cfg.Deezer.TokenExpiry = time.Time{}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved access token removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authStatusCmd, authLogoutCmd)

	authCmd.Flags().BoolVar(&authListen, "listen", false, "Serve the redirect URL locally to receive the code")
	authCmd.Flags().BoolVar(&authReset, "reset", false, "Ask for the application settings again")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Deezer Authorization")
	fmt.Fprintln(out, "====================")
	fmt.Fprintln(out)

	if authReset {
		cfg.Deezer.AppID = ""
		cfg.Deezer.Secret = ""
		cfg.Deezer.RedirectURL = ""
	}
	if err := promptApp(reader, out, &cfg.Deezer); err != nil {
		return err
	}

	// The saved token stays on disk until a new one replaces it
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	var prompter deezer.CodePrompter = deezer.ConsolePrompter{In: reader, Out: out}
	if authListen {
		srv, err := callback.New(cfg.Deezer.RedirectURL, out, logger)
		if err != nil {
			return err
		}
		prompter = srv
	}

	a, err := newAppWith(cmd, cfg, account.Options{
		Interactive: true,
		Prompter:    prompter,
		OpenBrowser: openBrowser,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	// Always run the flow, even when the saved token is still valid
	a.acct.Credentials().SetToken(nil)
	if _, err := a.acct.Login(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n✓ Authorization successful!\n")
	fmt.Fprintf(out, "✓ Access token saved to %s/config.yaml\n", config.GetConfigDir())
	if tok := a.acct.Credentials().Token(); tok != nil {
		fmt.Fprintf(out, "✓ Token %s\n", describeExpiry(tok))
	}
	return nil
}

// promptApp asks for whatever application settings are missing.
func promptApp(reader *bufio.Reader, out io.Writer, dc *config.DeezerConfig) error {
	if dc.AppID != "" && dc.Secret != "" && dc.RedirectURL != "" {
		fmt.Fprintf(out, "Using application %s (redirect %s).\n", dc.AppID, dc.RedirectURL)
		fmt.Fprintln(out, "Run with --reset to enter different settings.")
		fmt.Fprintln(out)
		return nil
	}

	fmt.Fprintln(out, "You can register an application at: https://developers.deezer.com/myapps")
	fmt.Fprintln(out)

	fields := []struct {
		label string
		value *string
	}{
		{"Application ID", &dc.AppID},
		{"Secret Key", &dc.Secret},
		{"Redirect URL", &dc.RedirectURL},
	}
	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		fmt.Fprintf(out, "Enter your %s: ", f.label)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read %s: %w", strings.ToLower(f.label), err)
		}
		*f.value = strings.TrimSpace(line)
		if *f.value == "" {
			return fmt.Errorf("%s is required", f.label)
		}
	}

	fmt.Fprintf(out, "Permissions [%s]: ", dc.Perms)
	line, _ := reader.ReadString('\n')
	if perms := strings.TrimSpace(line); perms != "" {
		dc.Perms = perms
	}
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	acct, err := account.New(cfg, account.Options{Token: tokenFlag, Logger: logger})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Mode:        %s\n", acct.Mode())
	fmt.Fprintf(out, "API:         %s\n", acct.Client().BaseURL())
	if cfg.Deezer.AppID != "" {
		fmt.Fprintf(out, "Application: %s\n", cfg.Deezer.AppID)
		fmt.Fprintf(out, "Permissions: %s\n", cfg.Deezer.Perms)
	}

	switch acct.Mode() {
	case account.ModeCredentials:
		fmt.Fprintf(out, "Token:       %s\n", describeExpiry(acct.Credentials().Token()))
	case account.ModeStatic:
		fmt.Fprintln(out, "Token:       fixed, never refreshed")
	default:
		fmt.Fprintln(out, "Token:       none, run 'dzr auth' to authorize")
	}
	return nil
}

func describeExpiry(tok *oauth2.Token) string {
	switch {
	case tok == nil || tok.AccessToken == "":
		return "missing"
	case tok.Expiry.IsZero():
		return "never expires"
	case time.Now().After(tok.Expiry):
		return fmt.Sprintf("expired at %s", tok.Expiry.Local().Format(time.RFC1123))
	default:
		return fmt.Sprintf("valid until %s", tok.Expiry.Local().Format(time.RFC1123))
	}
}
