package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/mentaljournal/internal/config"
)

func addConfig(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration.",
		Example: `
mentaljournal config
MENTALJOURNAL_THEME=light mentaljournal config
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(ro.configPath)
			if err != nil {
				return err
			}
			printSettings(color.Output, cfg)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func printSettings(w io.Writer, cfg *config.Config) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Value"))
	for _, kv := range cfg.Settings() {
		tbl.AddRow(kv[0], kv[1])
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
