// Command demo is a terminal watcher for a running ncstfeed server.
// It polls /api/announcements and can ask the server to drop its cache.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ncstfeed/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// watchOptions are the watcher's command-line settings
type watchOptions struct {
	serverURL string
	interval  time.Duration
	altScreen bool
}

// parseFlags reads the watcher flags. NCSTFEED_URL from the environment
// (or .env) replaces the default server address.
func parseFlags(args []string, output io.Writer) (watchOptions, error) {
	defaultURL := "http://localhost:8080"
	if v := os.Getenv("NCSTFEED_URL"); v != "" {
		defaultURL = v
	}

	var opts watchOptions
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.serverURL, "url", defaultURL, "ncstfeed server URL")
	fs.DurationVar(&opts.interval, "interval", 30*time.Second, "Polling interval")
	fs.BoolVar(&opts.altScreen, "alt-screen", false, "Draw in the terminal's alternate screen")
	if err := fs.Parse(args); err != nil {
		return watchOptions{}, err
	}
	if opts.interval < time.Second {
		return watchOptions{}, fmt.Errorf("interval %s is too short, use at least 1s", opts.interval)
	}
	return opts, nil
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(err.Error()))
		os.Exit(2)
	}

	fmt.Println(tui.InfoStyle.Render(fmt.Sprintf("Watching %s every %s", opts.serverURL, opts.interval)))

	var programOpts []tea.ProgramOption
	if opts.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	programOpts = append(programOpts, tea.WithContext(ctx))

	program := tea.NewProgram(tui.NewModel(opts.serverURL, opts.interval), programOpts...)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("watcher stopped: "+err.Error()))
		os.Exit(1)
	}
}
