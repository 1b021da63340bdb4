package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cetheme/internal/schema"
)

var errInvalidThemes = errors.New("one or more themes failed validation")

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate theme files without importing them",
	Long: `Validate one or more theme files against the palette schema.

The configuration file is not read or modified. Exits with status 1 if any
file is invalid.

Examples:
  cetheme validate Dracula.xml
  curl -s https://example.org/theme.xml | cetheme validate -
  cetheme validate -x strict.xsd themes/*.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&rootOpts.schema, "xml", "x", "",
		"Custom XML schema (XSD) used for validation")
}

func runValidate(cmd *cobra.Command, args []string) error {
	validator, err := newValidator()
	if err != nil {
		return err
	}
	return validateFiles(cmd.OutOrStdout(), cmd.InOrStdin(), validator, args)
}

// validateFiles prints one line per file and returns errInvalidThemes if any
// fail. A path of "-" reads the candidate from stdin.
func validateFiles(w io.Writer, stdin io.Reader, validator *schema.Validator, paths []string) error {
	invalid := 0
	for _, path := range paths {
		var result schema.Result
		if path == "-" {
			result = validator.ValidateReader("stdin", stdin)
		} else {
			result = validator.Validate(path)
		}
		if result.Valid {
			if _, err := fmt.Fprintf(w, "%s: valid\n", path); err != nil {
				return err
			}
			continue
		}

		invalid++
		msg := "invalid"
		if result.Diagnostic != nil {
			msg = "invalid: " + result.Diagnostic.String()
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", path, msg); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w (%d of %d)", errInvalidThemes, invalid, len(paths))
	}
	return nil
}
