package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/mentaljournal/internal/config"
)

func addQuote(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print a random motivational quote.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(ro.configPath)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(color.Output, color.New(color.Italic).Sprintf("„%s“", cat.RandomQuote()))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
