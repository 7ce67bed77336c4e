package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/wecare/cmd/tui/ui"
	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/config"
	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/router"
	"github.com/Varun5711/wecare/internal/session"
	"github.com/Varun5711/wecare/internal/tokenstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	closeLog, err := logger.SetOutputFile(cfg.Log.File)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log := logger.New("tui")
	log.SetStdLog()

	tokens, err := tokenstore.OpenSQLite(cfg.Client.TokenDBPath)
	if err != nil {
		fmt.Printf("Failed to open token store: %v\n", err)
		os.Exit(1)
	}
	defer tokens.Close()

	client := api.NewClient(cfg.Client.BackendURL, tokens, api.WithTimeout(cfg.Client.RequestTimeout))
	sess := session.New(client, tokens)

	start := router.Location{Path: router.PathHome}
	if len(os.Args) > 1 {
		start = router.Parse(os.Args[1])
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Starting WeCare against %s at %s", cfg.Client.BackendURL, start)

	p := tea.NewProgram(
		ui.NewModel(ctx, sess, client, start),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
