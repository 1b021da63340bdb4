package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cetheme/internal/adapter/output"
	"github.com/jmylchreest/cetheme/internal/config"
	"github.com/jmylchreest/cetheme/internal/core"
	"github.com/jmylchreest/cetheme/internal/model"
	"github.com/jmylchreest/cetheme/internal/palette"
)

// listOptions controls how installed themes are selected and printed.
type listOptions struct {
	format    string
	search    string
	filter    string
	since     string
	limit     int
	sortBy    string
	sortOrder string
	template  string
	noColors  bool
	allColors bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list [name|id]",
	Short: "List installed themes",
	Long: `List the themes installed in the ConEmu configuration file.

With a name or palette id argument, outputs that single theme.

Examples:
  # All installed themes, in install order
  cetheme list

  # Names only, for scripting
  cetheme list --format names

  # Colour swatches of the dark themes
  cetheme list --format swatch --search dark

  # Themes added in the last week, newest first
  cetheme list --since 7d --sort modified --order desc

  # Filter expression
  cetheme list --filter "build>=180000,name~solar"

  # One theme as JSON
  cetheme list Dracula --format json`,
	Args: cobra.MaximumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		defaults := configListOptions(cfg.Output)
		if !flags.Changed("format") {
			listOpts.format = defaults.format
		}
		if !flags.Changed("sort") {
			listOpts.sortBy = defaults.sortBy
		}
		if !flags.Changed("order") {
			listOpts.sortOrder = defaults.sortOrder
		}
		if name := listOpts.template; name != "" {
			if tmpl := cfg.GetTemplate(name); tmpl != "" {
				listOpts.template = tmpl
			}
		}
	},
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "o", "plain",
		"Output format (plain, json, yaml, names, swatch)")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Only themes whose name contains this text")
	listCmd.Flags().StringVar(&listOpts.filter, "filter", "",
		"Filter expression (e.g. name~dark,build>=180000,modified<7d)")
	listCmd.Flags().StringVar(&listOpts.since, "since", "",
		"Only themes modified within this duration (e.g. 48h, 7d, 1w)")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of themes to show (0=unlimited)")
	listCmd.Flags().StringVar(&listOpts.sortBy, "sort", "id",
		"Sort by field (id, name, modified)")
	listCmd.Flags().StringVar(&listOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Go template (or configured template name) for plain output")
	listCmd.Flags().BoolVar(&listOpts.noColors, "no-colors", false,
		"Omit colour tables from json and yaml output")
	listCmd.Flags().BoolVar(&listOpts.allColors, "all-colors", false,
		"Show all 32 colour table entries in swatch output")
}

func runList(cmd *cobra.Command, args []string) error {
	master, err := openMasterFile()
	if err != nil {
		return err
	}
	doc, err := master.Load()
	if err != nil {
		return fmt.Errorf("failed to load ConEmu configuration: %w", err)
	}

	themes := palette.Installed(doc)
	logger.Debug("found installed themes", "count", len(themes), "path", master.Path())

	if len(args) > 0 {
		t := lookupTheme(themes, args[0])
		if t == nil {
			return fmt.Errorf("theme %q is not installed", args[0])
		}
		themes = []model.Theme{*t}
	}

	return printThemes(cmd.OutOrStdout(), themes, listOpts)
}

// configListOptions returns the listing defaults from the [output] section.
func configListOptions(out config.OutputConfig) listOptions {
	return listOptions{
		format:    out.Format,
		sortBy:    out.Sort,
		sortOrder: out.Order,
	}
}

// lookupTheme finds a theme by exact name, then by palette id.
func lookupTheme(themes []model.Theme, arg string) *model.Theme {
	arg = strings.TrimSpace(arg)
	if t := core.LookupByName(themes, arg); t != nil {
		return t
	}
	if id, err := strconv.Atoi(strings.TrimPrefix(arg, "Palette")); err == nil {
		return core.LookupByID(themes, id)
	}
	return nil
}

// selectThemes applies the filter, search, sort and limit options.
func selectThemes(themes []model.Theme, opts listOptions) ([]model.Theme, error) {
	expr, err := core.ParseFilter(opts.filter)
	if err != nil {
		return nil, err
	}
	themes = core.FilterWithExpr(themes, expr)
	themes = core.Search(themes, opts.search)

	filterOpts := core.FilterOptions{Limit: opts.limit}
	if opts.since != "" {
		d, err := core.ParseDuration(opts.since)
		if err != nil {
			return nil, err
		}
		filterOpts.Since = d
	}

	field, _ := core.ParseSortField(opts.sortBy)
	order, _ := core.ParseSortOrder(opts.sortOrder)
	core.Sort(themes, core.SortOptions{Field: field, Order: order})

	// Limit after sorting so --limit keeps the first N in display order.
	themes = core.Filter(themes, filterOpts)
	return themes, nil
}

func printThemes(w io.Writer, themes []model.Theme, opts listOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	themes, err = selectThemes(themes, opts)
	if err != nil {
		return err
	}

	fopts := output.DefaultFormatterOptions()
	fopts.Template = opts.template
	fopts.ShowColors = !opts.noColors
	fopts.AllColors = opts.allColors

	return output.NewFormatter(format, fopts).Format(w, themes)
}
