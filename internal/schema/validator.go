// Package schema validates candidate theme documents against an XSD schema.
//
// The bundled default schema describes a single ConEmu palette key: a root
// key element with name, modified and build attributes and one or more value
// children. Callers may supply their own schema file instead.
package schema

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"

	"github.com/jmylchreest/cetheme/internal/document"
)

// Diagnostic locates the first problem found in a candidate.
// Line and Column are zero when the failure has no position (e.g. the file
// could not be opened).
type Diagnostic struct {
	Line    int
	Column  int
	Code    string
	Message string
}

// String formats the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d, position %d: %s", d.Line, d.Column, d.Message)
	}
	return d.Message
}

// Result is the outcome of validating one candidate.
type Result struct {
	Valid      bool
	Diagnostic *Diagnostic
}

// Validator checks candidates against a compiled schema. It holds no state
// besides the schema and is safe to reuse for any number of candidates.
type Validator struct {
	logger *slog.Logger
	schema *xsd.Schema
	source string
}

// NewValidator compiles the schema at schemaPath, or the bundled default
// schema when schemaPath is empty.
func NewValidator(logger *slog.Logger, schemaPath string) (*Validator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		compiled *xsd.Schema
		err      error
		source   = schemaPath
	)
	if schemaPath == "" {
		source = "bundled:" + DefaultSchemaPath
		compiled, err = xsd.LoadWithOptions(EmbeddedSchemas, DefaultSchemaPath, xsd.LoadOptions{})
	} else {
		compiled, err = xsd.LoadFile(schemaPath)
	}
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", source, err)
	}

	logger.Debug("compiled validation schema", "schema", source)
	return &Validator{logger: logger, schema: compiled, source: source}, nil
}

// Source describes where the schema was loaded from.
func (v *Validator) Source() string {
	return v.source
}

// Validate checks the candidate file at path.
func (v *Validator) Validate(path string) Result {
	v.logger.Info("validating XML", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return v.fail(path, Diagnostic{Message: err.Error()})
	}
	defer func() { _ = f.Close() }()

	return v.ValidateReader(path, f)
}

// ValidateReader checks a candidate read from r; name is used for logging.
func (v *Validator) ValidateReader(name string, r io.Reader) Result {
	data, err := io.ReadAll(r)
	if err != nil {
		return v.fail(name, Diagnostic{Message: err.Error()})
	}
	data, err = document.NormalizeCharset(data)
	if err != nil {
		return v.fail(name, Diagnostic{Message: err.Error()})
	}

	if err := v.schema.Validate(bytes.NewReader(data)); err != nil {
		return v.fail(name, diagnosticFrom(err))
	}

	v.logger.Info("XML is valid", "path", name)
	return Result{Valid: true}
}

func (v *Validator) fail(name string, d Diagnostic) Result {
	v.logger.Warn("schema validation failed",
		"path", name,
		"line", d.Line,
		"position", d.Column,
		"message", d.Message,
	)
	return Result{Valid: false, Diagnostic: &d}
}

// diagnosticFrom reduces a validation error to its first violation.
func diagnosticFrom(err error) Diagnostic {
	violations, ok := xsderrors.AsValidations(err)
	if !ok || len(violations) == 0 {
		return Diagnostic{Message: err.Error()}
	}

	first := violations[0]
	msg := first.Message
	if msg == "" {
		msg = first.Error()
	}
	return Diagnostic{
		Line:    first.Line,
		Column:  first.Column,
		Code:    first.Code,
		Message: msg,
	}
}
