package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadopc/mentaljournal/internal/catalog"
	"github.com/sadopc/mentaljournal/internal/config"
)

func TestCommandsRegistered(t *testing.T) {
	cmd := New()
	for _, name := range []string{"version", "tools", "quote", "config"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, sub.Name())
	}
	require.NotNil(t, cmd.Flags().Lookup("user"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestVersionShort(t *testing.T) {
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), version)
}

func TestPrintTools(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	var out bytes.Buffer
	printTools(&out, cat)
	for _, tool := range cat.Tools {
		require.Contains(t, out.String(), tool.Key)
	}
}

func TestPrintTool(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printTool(&out, cat, cat.Tools[0].Key, true))
	require.NotEmpty(t, strings.TrimSpace(out.String()))

	require.Error(t, printTool(&out, cat, "nope", true))
}

func TestPrintSettings(t *testing.T) {
	var out bytes.Buffer
	printSettings(&out, config.Default())
	require.Contains(t, out.String(), "emergency_url")
	require.Contains(t, out.String(), config.DefaultEmergencyURL)
}

func TestDarkTheme(t *testing.T) {
	cfg := config.Default()
	cfg.Theme = config.ThemeDark
	require.True(t, darkTheme(cfg))
	cfg.Theme = config.ThemeLight
	require.False(t, darkTheme(cfg))
}

func TestLoadCatalogFromFile(t *testing.T) {
	cfg := config.Default()
	cfg.ContentFile = "does-not-exist.toml"
	_, err := loadCatalog(cfg)
	require.Error(t, err)

	cfg.ContentFile = ""
	cat, err := loadCatalog(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, cat.Quotes)
}

func TestRootsDoNotShareFlags(t *testing.T) {
	first := New()
	require.NoError(t, first.PersistentFlags().Set("config", "erste.yaml"))
	require.NoError(t, first.Flags().Set("user", "anna"))

	second := New()
	require.Empty(t, second.PersistentFlags().Lookup("config").Value.String())
	require.Empty(t, second.Flags().Lookup("user").Value.String())
}
