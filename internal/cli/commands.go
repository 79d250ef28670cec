// Package cli wires the mentaljournal command line.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/sadopc/mentaljournal/internal/catalog"
	"github.com/sadopc/mentaljournal/internal/config"
	"github.com/sadopc/mentaljournal/internal/store"
	"github.com/sadopc/mentaljournal/internal/tui"
)

type rootOptions struct {
	configPath string
	user       string
	debug      bool
}

func New() *cobra.Command {
	ro := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "mentaljournal",
		Short: "Ein Tagebuch für Gedanken und Gefühle im Terminal.",
		Long: `Mental Journal ist eine Selbstreflexions-App für junge Menschen.
Einträge, Chat und Tools leben nur im Arbeitsspeicher: beim Beenden ist alles weg.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(ro)
		},
	}

	cmd.PersistentFlags().StringVarP(&ro.configPath, "config", "c", "", "Path to a config file.")
	cmd.Flags().StringVarP(&ro.user, "user", "u", "", "Log in as this user and skip the login form.")
	cmd.Flags().BoolVar(&ro.debug, "debug", false, "Write a debug log to the configured log file.")

	addCommands(cmd, ro)
	return cmd
}

func addCommands(topLevel *cobra.Command, ro *rootOptions) {
	addVersion(topLevel)
	addTools(topLevel, ro)
	addQuote(topLevel, ro)
	addConfig(topLevel, ro)
}

// loadCatalog returns the built-in content unless cfg names a replacement.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.ContentFile != "" {
		return catalog.LoadFile(cfg.ContentFile)
	}
	return catalog.Load()
}

func darkTheme(cfg *config.Config) bool {
	switch cfg.Theme {
	case config.ThemeDark:
		return true
	case config.ThemeLight:
		return false
	}
	return termenv.HasDarkBackground()
}

func runUI(o *rootOptions) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	log.SetOutput(io.Discard)
	if o.debug || cfg.LogFile != "" {
		path := cfg.LogFile
		if path == "" {
			path = filepath.Join(os.TempDir(), config.AppName+".log")
		}
		f, err := tea.LogToFile(path, config.AppName)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	s, err := store.NewMemory()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	log.Printf("starting, config: %s", cfg.Source)
	app := tui.NewApp(s, tui.Options{
		Config:  cfg,
		Catalog: cat,
		Dark:    darkTheme(cfg),
		User:    o.user,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
