package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/mentaljournal/internal/catalog"
	"github.com/sadopc/mentaljournal/internal/config"
)

func addTools(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "tools [key]",
		Short: "List the self-help tools or print one of them.",
		Example: `
mentaljournal tools
mentaljournal tools option1
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(ro.configPath)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				printTools(color.Output, cat)
				return nil
			}
			return printTool(color.Output, cat, args[0], darkTheme(cfg))
		},
	}

	topLevel.AddCommand(cmd)
}

func printTools(w io.Writer, cat *catalog.Catalog) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Tool"), bold.Sprint("Worum es geht"))
	for _, t := range cat.Tools {
		tbl.AddRow(t.Key, t.Label, t.Summary)
	}

	_, _ = fmt.Fprintln(w, tbl)
}

func printTool(w io.Writer, cat *catalog.Catalog, key string, dark bool) error {
	t, ok := cat.Tool(key)
	if !ok {
		return fmt.Errorf("unknown tool %q", key)
	}

	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(80))
	if err != nil {
		return err
	}
	out, err := r.Render("# " + t.Label + "\n\n" + t.Body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
