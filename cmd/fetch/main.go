package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ncstfeed/common"
	"ncstfeed/config"
	"ncstfeed/orchestrator"
	"ncstfeed/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
)

func main() {
	asJSON := flag.Bool("json", false, "Print normalized announcements as JSON")
	limit := flag.Int("limit", 0, "Override RESULT_LIMIT")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall deadline for the fetch chain")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("config error: "+err.Error()))
		os.Exit(1)
	}
	if *limit > 0 {
		cfg.ResultLimit = *limit
	}
	if err := common.ConfigureLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("logging error: %v", err)
	}
	logrus.SetOutput(os.Stderr)

	pipeline := orchestrator.New(cfg)
	defer pipeline.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	payload, items, err := pipeline.RunOnce(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	if *asJSON {
		err = writeJSON(os.Stdout, items)
	} else {
		err = writeSummary(os.Stdout, payload, items)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, items []types.Announcement) error {
	if items == nil {
		items = []types.Announcement{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// writeSummary prints one box per announcement
func writeSummary(w io.Writer, payload *types.RawPayload, items []types.Announcement) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, infoStyle.Render("No entries found"))
		return err
	}

	header := fmt.Sprintf("%d announcement(s) from %s", len(items), payload.Source.Label())
	if _, err := fmt.Fprintln(w, titleStyle.Render(header)); err != nil {
		return err
	}
	for _, a := range items {
		var b strings.Builder
		b.WriteString(titleStyle.Render(a.Title))
		if a.Published != nil {
			b.WriteString("\n" + infoStyle.Render(a.Published.Format(time.RFC1123Z)))
		}
		if a.Link != "" {
			b.WriteString("\n" + a.Link)
		}
		if a.Text != "" {
			b.WriteString("\n\n" + truncate(a.Text, 280))
		}
		if _, err := fmt.Fprintln(w, boxStyle.Render(b.String())); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
