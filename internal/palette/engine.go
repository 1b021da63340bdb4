// Package palette merges candidate theme documents into a ConEmu settings
// document.
//
// The Engine validates each candidate, derives its theme name, suppresses
// names that are already installed and attaches new palettes under the
// Colors section with sequential PaletteN identifiers. Per-file problems are
// logged and reported as Outcomes; they never abort a batch.
package palette

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmylchreest/cetheme/internal/document"
	"github.com/jmylchreest/cetheme/internal/model"
	"github.com/jmylchreest/cetheme/internal/schema"
)

// Validator checks a candidate file before it is merged.
type Validator interface {
	Validate(path string) schema.Result
}

// Saver persists the settings document after an import request.
type Saver interface {
	Save(doc *document.Document) error
}

// Options configures an Engine.
type Options struct {
	// BaseDir is the fallback directory for relative candidate paths and the
	// default folder to scan. Normally the directory of the executable.
	BaseDir string

	// MasterPath is the settings file itself; it is never offered as a
	// candidate during folder scans.
	MasterPath string

	// Now returns the timestamp written into imported palettes.
	Now func() time.Time

	Logger *slog.Logger
}

// Engine merges candidates into one settings document.
// It is not safe for concurrent use.
type Engine struct {
	doc        *document.Document
	validator  Validator
	saver      Saver
	index      *Index
	baseDir    string
	masterPath string
	now        func() time.Time
	logger     *slog.Logger
	runID      string
}

// NewEngine creates an Engine over doc. The installed theme index is built
// from doc at this point.
func NewEngine(doc *document.Document, validator Validator, saver Saver, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	runID := model.NewRunID()

	return &Engine{
		doc:        doc,
		validator:  validator,
		saver:      saver,
		index:      NewIndex(doc.InstalledThemeNames()),
		baseDir:    opts.BaseDir,
		masterPath: opts.MasterPath,
		now:        now,
		logger:     logger.With("run", runID),
		runID:      runID,
	}
}

// Document returns the document being mutated.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// Index returns the installed theme index.
func (e *Engine) Index() *Index {
	return e.index
}

// RunID identifies this engine's run in logs and reports.
func (e *Engine) RunID() string {
	return e.runID
}

// EnsureColorsSection creates the Colors section if it is missing.
func (e *Engine) EnsureColorsSection() {
	if e.doc.EnsureColorsSection(e.now()) {
		e.logger.Info("initializing color palettes")
	}
}

// AddPalette validates the candidate at path and merges it unless a theme
// with the same name is already installed. The Colors section must exist.
func (e *Engine) AddPalette(path string) Outcome {
	result := e.validator.Validate(path)
	if !result.Valid {
		e.logger.Warn("did not import file because it did not contain a valid theme", "path", path)
		return Outcome{Path: path, Status: StatusInvalid, Diagnostic: result.Diagnostic}
	}

	candidate, err := readCandidate(path)
	if err != nil {
		e.logger.Warn("failed to read theme", "path", path, "error", err)
		return Outcome{Path: path, Status: StatusFailed, Err: err}
	}

	name := candidate.ThemeName()
	if e.index.Contains(name) {
		e.logger.Info("theme is already installed and will not be installed again", "theme", name)
		return Outcome{Path: path, Status: StatusDuplicate, ThemeName: name}
	}
	if e.doc.Colors() == nil {
		return Outcome{Path: path, Status: StatusFailed, ThemeName: name, Err: document.ErrNoColors}
	}

	id := e.doc.NextPaletteID()
	entry := Prepare(candidate, id, e.now(), e.doc.Build())
	if err := e.doc.AppendPalette(entry, id); err != nil {
		return Outcome{Path: path, Status: StatusFailed, ThemeName: name, Err: err}
	}
	e.index.Add(name)

	if name == "" {
		e.logger.Warn("imported theme has no Name value", "path", path, "palette", entry.Name())
	}
	e.logger.Info("adding theme", "theme", name, "palette", entry.Name())
	return Outcome{Path: path, Status: StatusImported, ThemeName: name, PaletteID: id}
}

// Prepare returns a copy of candidate rewritten as palette id: name becomes
// PaletteN, modified becomes now and build becomes the settings build.
func Prepare(candidate *document.Node, id int, now time.Time, build string) *document.Node {
	entry := candidate.Clone()
	entry.SetAttr(document.AttrName, document.PaletteName(id))
	entry.SetAttr(document.AttrModified, document.FormatTimestamp(now))
	entry.SetAttr(document.AttrBuild, build)
	return entry
}

// ImportFile merges a single candidate and saves the document. A path that
// does not exist is retried relative to the base directory.
// The error is non-nil only when saving fails.
func (e *Engine) ImportFile(path string) (Report, error) {
	report := Report{RunID: e.runID}
	e.EnsureColorsSection()
	e.logger.Info("importing theme", "path", path)

	resolved, ok := e.resolveFile(path)
	if !ok {
		e.logger.Warn("unable to find the file specified", "path", path)
		report.add(Outcome{Path: path, Status: StatusNotFound})
		return report, nil
	}

	report.add(e.AddPalette(resolved))
	return report, e.persist()
}

// ImportFolder merges every .xml file directly inside dir (base directory
// when empty) in directory order and saves the document once at the end.
// The error is non-nil when the directory cannot be read or saving fails.
func (e *Engine) ImportFolder(dir string) (Report, error) {
	report := Report{RunID: e.runID}
	e.EnsureColorsSection()

	if strings.TrimSpace(dir) == "" {
		dir = e.baseDir
	}
	e.logger.Info("looking for themes in folder", "path", dir)

	files, err := e.scanFolder(dir)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		e.logger.Info("no valid files found", "path", dir)
		return report, nil
	}

	e.logger.Info("found files to import", "count", len(files))
	for _, f := range files {
		report.add(e.AddPalette(f))
	}
	return report, e.persist()
}

// Installed returns the installed palettes of the engine's document.
func (e *Engine) Installed() []model.Theme {
	return Installed(e.doc)
}

func (e *Engine) persist() error {
	if e.saver == nil {
		return nil
	}
	if err := e.saver.Save(e.doc); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}
	return nil
}

func (e *Engine) resolveFile(path string) (string, bool) {
	if isFile(path) {
		return path, true
	}
	if e.baseDir == "" || filepath.IsAbs(path) {
		return "", false
	}
	local := filepath.Join(e.baseDir, path)
	if isFile(local) {
		return local, true
	}
	return "", false
}

func (e *Engine) scanFolder(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	master := absPath(e.masterPath)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if master != "" && absPath(path) == master {
			e.logger.Debug("skipping settings file", "path", path)
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func readCandidate(path string) (*document.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = document.NormalizeCharset(data)
	if err != nil {
		return nil, err
	}
	return document.ParseTree(bytes.NewReader(data))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
