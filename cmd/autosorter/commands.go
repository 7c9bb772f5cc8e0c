package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fenilsonani/autosorter/internal/classifier"
	"github.com/fenilsonani/autosorter/internal/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initConfig bool

var classifyCmd = &cobra.Command{
	Use:   "classify NAME...",
	Short: "Show which category each file name would be sorted into",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cls := classifier.New(cfg)
		out := cmd.OutOrStdout()
		p := newPainter(out)

		for _, name := range args {
			fmt.Fprintf(out, "%s -> %s\n",
				p.render(FilePathStyle, name),
				p.render(CategoryStyle, cls.ClassifyName(name)))
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories and the extensions they collect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		out := cmd.OutOrStdout()
		p := newPainter(out)

		fmt.Fprintln(out, p.render(TitleStyle, "Categories for "+cfg.WatchDir))

		extensions := make(map[string][]string, len(cfg.Categories))
		for _, category := range cfg.Categories {
			extensions[category.Name] = category.Extensions
		}

		cls := classifier.New(cfg)
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetStyle(p.tableStyle())
		t.AppendHeader(table.Row{"Category", "Extensions"})
		for _, name := range cls.Categories() {
			if name == cls.Default() {
				t.AppendRow(table.Row{name, p.render(DimStyle, "(everything else)")})
				continue
			}
			t.AppendRow(table.Row{name, strings.Join(extensions[name], " ")})
		}
		t.Render()

		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long: `Shows the config file location and the effective configuration.
With --init, writes the default configuration to that location.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolveConfigPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if initConfig {
			created, err := config.EnsureConfigExists(cfgPath)
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("config file already exists: %s", cfgPath)
			}
			fmt.Fprintf(out, "Wrote default configuration to %s\n", cfgPath)
			return nil
		}

		fmt.Fprintf(out, "Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "Config file does not exist. Using default configuration.")
			fmt.Fprintln(out, "Run 'autosorter config --init' to create it.")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s", data)
		return nil
	},
}
