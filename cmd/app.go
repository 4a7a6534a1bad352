package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/jfmyers9/dzr/internal/account"
	"github.com/jfmyers9/dzr/internal/config"
	"github.com/jfmyers9/dzr/internal/render"
	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/spf13/cobra"
)

// app bundles what a command needs to talk to Deezer.
type app struct {
	cfg    *config.Config
	acct   *account.Account
	client *deezer.Client
	cmd    *cobra.Command
}

// loadConfig reads the config and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	if outputWidth != 0 {
		cfg.OutputWidth = outputWidth
	}
	if baseURLFlag != "" {
		cfg.Deezer.BaseURL = baseURLFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds the client for cmd. With interactive set, a configured app
// without a saved token runs the authorization flow on first use.
func newApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newAppWith(cmd, cfg, account.Options{
		Token:       tokenFlag,
		Interactive: interactive,
		Prompter:    deezer.ConsolePrompter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()},
		OpenBrowser: openBrowser,
		Logger:      logger,
	})
}

func newAppWith(cmd *cobra.Command, cfg *config.Config, opts account.Options) (*app, error) {
	acct, err := account.New(cfg, opts)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, acct: acct, client: acct.Client(), cmd: cmd}, nil
}

func (a *app) renderOptions() render.Options {
	return render.Options{Format: a.cfg.OutputFormat, Width: a.cfg.OutputWidth}
}

// print writes first and, for paginated results, up to --pages pages in total.
func (a *app) print(ctx context.Context, first *deezer.Response) error {
	out := a.cmd.OutOrStdout()
	if first == nil {
		return nil
	}

	printed := 0
	for page, err := range a.client.Pages(ctx, first) {
		if err != nil {
			return explain(err)
		}
		if err := render.Response(out, page, a.renderOptions()); err != nil {
			return err
		}
		printed++
		if maxPages > 0 && printed >= maxPages {
			break
		}
	}
	return nil
}

// run performs one request and prints its result.
func (a *app) run(ctx context.Context, call func(context.Context, *deezer.Client) (*deezer.Response, error)) error {
	resp, err := call(ctx, a.client)
	if err != nil {
		return explain(err)
	}
	return a.print(ctx, resp)
}

// explain adds a hint to errors the user can act on.
func explain(err error) error {
	var apiErr *deezer.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case deezer.ErrCodeTokenInvalid, deezer.ErrCodePermission:
			return fmt.Errorf("%w (run 'dzr auth' to authorize dzr)", err)
		case deezer.ErrCodeQuota:
			return fmt.Errorf("%w (try again in a few seconds)", err)
		}
	}
	if errors.Is(err, deezer.ErrNoPrompter) {
		return fmt.Errorf("%w (run 'dzr auth' first)", err)
	}
	return err
}

// openBrowser opens url in the default browser.
var openBrowser = func(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
