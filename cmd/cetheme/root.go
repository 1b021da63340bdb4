// Package main provides the CLI entrypoint for cetheme.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cetheme/internal/config"
	"github.com/jmylchreest/cetheme/internal/document"
	"github.com/jmylchreest/cetheme/internal/palette"
	"github.com/jmylchreest/cetheme/internal/schema"
	"github.com/jmylchreest/cetheme/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// noneDir disables the folder import when passed to --dir.
const noneDir = "none"

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		configDir  string
	}
	logger *slog.Logger
)

var rootOpts rootOptions

// rootOptions are the flags of the import command.
type rootOptions struct {
	file   string
	dir    string
	backup bool
	schema string
	list   bool
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cetheme",
	Short: "Import colour themes into ConEmu",
	Long: `cetheme imports colour themes (palettes) into the ConEmu settings file.

Without flags it imports every .xml theme found next to the executable and
skips themes that are already installed. Each candidate is validated against
an XSD schema before it is merged.

Examples:
  # Import every theme in the current install directory
  cetheme

  # Import a single theme
  cetheme -f Dracula.xml

  # Import a folder of themes, backing up ConEmu.xml first
  cetheme -b -d ~/ConEmu-Color-Themes/themes

  # List installed themes
  cetheme -l`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalOpts.configDir != "" {
			cfg.ConEmu.ConfigDir = globalOpts.configDir
		}
		return nil
	},
	RunE: runImport,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/cetheme/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configDir, "config-dir", "",
		"Directory containing ConEmu.xml (default: user config directory)")

	// Import flags
	rootCmd.Flags().StringVarP(&rootOpts.file, "file", "f", "",
		"File containing the theme that you want to import")
	rootCmd.Flags().StringVarP(&rootOpts.dir, "dir", "d", "",
		`Directory containing themes to import ("none" to skip; default: executable directory)`)
	rootCmd.Flags().BoolVarP(&rootOpts.backup, "backup", "b", false,
		"Back up the configuration file before importing")
	rootCmd.Flags().StringVarP(&rootOpts.schema, "xml", "x", "",
		"Custom XML schema (XSD) used for validation")
	rootCmd.Flags().BoolVarP(&rootOpts.list, "list", "l", false,
		"List the currently installed themes")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelInfo
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// actionPlan is what one root invocation does, in order.
type actionPlan struct {
	backup   bool
	file     string
	scanDir  bool
	dir      string
	list     bool
	anyWrite bool
}

// planActions decides the work for the root command. A file, backup or list
// request suppresses the implicit folder import; an explicit --dir always
// scans unless it is "none".
func planActions(opts rootOptions, dirSet, backupDefault bool) actionPlan {
	plan := actionPlan{
		backup: opts.backup || backupDefault,
		file:   strings.TrimSpace(opts.file),
		list:   opts.list,
	}

	implicit := plan.file == "" && !opts.backup && !opts.list
	switch {
	case dirSet:
		plan.scanDir = !strings.EqualFold(strings.TrimSpace(opts.dir), noneDir)
		plan.dir = opts.dir
	case implicit:
		plan.scanDir = true
	}

	plan.anyWrite = plan.file != "" || plan.scanDir
	return plan
}

func runImport(cmd *cobra.Command, args []string) error {
	plan := planActions(rootOpts, cmd.Flags().Changed("dir"), cfg.Import.Backup)

	master, err := openMasterFile()
	if err != nil {
		return err
	}

	doc, err := master.Load()
	if err != nil {
		return fmt.Errorf("failed to load ConEmu configuration: %w", err)
	}
	logger.Debug("loaded configuration", "path", master.Path(), "build", doc.Build())

	if plan.backup {
		runBackup(master)
	}

	if plan.anyWrite {
		engine, err := newEngine(doc, master)
		if err != nil {
			return err
		}

		var report palette.Report
		if plan.file != "" {
			r, err := engine.ImportFile(plan.file)
			report.Merge(r)
			if err != nil {
				return err
			}
		}
		if plan.scanDir {
			r, err := engine.ImportFolder(plan.dir)
			report.Merge(r)
			if err != nil {
				return err
			}
		}
		logger.Info(summarize(report), "run", engine.RunID())
	}

	if plan.list {
		return printThemes(cmd.OutOrStdout(), palette.Installed(doc), configListOptions(cfg.Output))
	}
	return nil
}

// openMasterFile resolves the ConEmu settings file from config.
func openMasterFile() (*store.MasterFile, error) {
	dir, err := cfg.MasterDir()
	if err != nil {
		return nil, err
	}
	return store.NewMasterFile(dir, cfg.MasterFileName()), nil
}

func newValidator() (*schema.Validator, error) {
	schemaPath := rootOpts.schema
	if schemaPath == "" {
		schemaPath = cfg.Import.Schema
	}
	return schema.NewValidator(logger, schemaPath)
}

func newEngine(doc *document.Document, master *store.MasterFile) (*palette.Engine, error) {
	validator, err := newValidator()
	if err != nil {
		return nil, err
	}

	base, err := resolveBaseDir(cfg.Import.BaseDir, os.Executable)
	if err != nil {
		return nil, err
	}

	return palette.NewEngine(doc, validator, master, palette.Options{
		BaseDir:    base,
		MasterPath: master.Path(),
		Logger:     logger,
	}), nil
}

// resolveBaseDir returns the configured base directory, or the directory of
// the running executable.
func resolveBaseDir(configured string, executable func() (string, error)) (string, error) {
	if configured != "" {
		return configured, nil
	}
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// runBackup writes the dated backup. Failure is logged and never aborts the import.
func runBackup(master *store.MasterFile) {
	dest, err := master.Backup(time.Now())
	if err != nil {
		logger.Warn("there was an error creating a backup of your configuration file", "path", dest, "error", err)
		return
	}
	logger.Info("created backup of configuration file", "path", dest)
}

// summarize describes a report in one line.
func summarize(r palette.Report) string {
	if len(r.Outcomes) == 0 {
		return "no themes processed"
	}
	parts := []string{fmt.Sprintf("%d imported", r.Count(palette.StatusImported))}
	for _, s := range []palette.Status{
		palette.StatusDuplicate,
		palette.StatusInvalid,
		palette.StatusNotFound,
		palette.StatusFailed,
	} {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	return "import finished: " + strings.Join(parts, ", ")
}
