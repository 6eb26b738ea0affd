package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"workhours/internal/api"
	"workhours/internal/aw"
	"workhours/internal/config"
	"workhours/internal/server"
	"workhours/internal/store"
	"workhours/internal/tui"
)

func main() {
	var (
		serve      = flag.Bool("serve", false, "run the provider server instead of the terminal client")
		monthFlag  = flag.String("month", "this", "month to show: YYYY-MM, \"this\" or \"last\"")
		configPath = flag.String("config", "", "config file path (default ~/.config/workhours/config.yaml)")
	)
	flag.Parse()

	if err := run(*serve, *monthFlag, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(serve bool, monthFlag, configPath string) error {
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if serve {
		return runServer(cfg)
	}
	return runClient(cfg, monthFlag)
}

func runServer(cfg *config.Config) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	dbPath := cfg.Database
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}
	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	srv := server.New(aw.NewClient(cfg.AWBase), s, loc)
	return srv.Router().Run(cfg.Listen)
}

func runClient(cfg *config.Config, monthFlag string) error {
	month, err := api.ParseMonth(monthFlag)
	if err != nil {
		return err
	}

	app := tui.NewApp(api.NewClient(cfg.Provider), month)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
