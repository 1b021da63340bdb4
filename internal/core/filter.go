// Package core provides filtering, sorting, and lookup logic for installed themes.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/cetheme/internal/model"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring (case-insensitive)
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // name, key, id, build, modified
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	regex    *regexp.Regexp
	intVal   int
	cutoffTS time.Time
}

// FilterExpr is a list of conditions that must all match.
type FilterExpr struct {
	Conditions []FilterCondition
}

// FilterOptions specifies simple criteria for filtering themes.
type FilterOptions struct {
	Since time.Duration // Only themes modified within this duration (0=all)
	Limit int           // Maximum results (0=unlimited)
}

// Filter filters themes based on the provided options.
func Filter(themes []model.Theme, opts FilterOptions) []model.Theme {
	cutoff := time.Now().Add(-opts.Since)
	result := make([]model.Theme, 0, len(themes))

	for _, t := range themes {
		if opts.Since > 0 {
			modified, ok := t.ModifiedTime()
			if !ok || modified.Before(cutoff) {
				continue
			}
		}
		result = append(result, t)
	}

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}

// ParseDuration parses a duration string with extended formats.
// Supports: 48h, 7d, 1w, 0 (all time)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" || s == "" {
		return 0, nil
	}

	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := strconv.Atoi(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

// ParseFilter parses a filter expression such as "name~dark,build>=180000".
// Conditions are comma-separated and ANDed together.
//
// Fields: name, key, id, build, modified.
// The modified field takes a duration: "modified<7d" means modified within
// the last seven days.
func ParseFilter(expr string) (*FilterExpr, error) {
	filter := &FilterExpr{}
	if expr == "" {
		return filter, nil
	}

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}
	return filter, nil
}

func parseCondition(s string) (FilterCondition, error) {
	// Longest operators first so "!=" is not read as "=".
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpGreaterEq,
		FilterOpLessEq,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}
			if err := cond.init(); err != nil {
				return FilterCondition{}, err
			}
			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

func (c *FilterCondition) init() error {
	switch c.Field {
	case "name", "theme":
		c.Field = "name"
	case "key", "palette":
		c.Field = "key"
	case "id", "build":
		v, err := strconv.Atoi(c.Value)
		if err != nil {
			return fmt.Errorf("invalid %s value: %s", c.Field, c.Value)
		}
		c.intVal = v
	case "modified", "time":
		c.Field = "modified"
		dur, err := ParseDuration(c.Value)
		if err != nil {
			return fmt.Errorf("invalid modified value: %w", err)
		}
		c.cutoffTS = time.Now().Add(-dur)
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}
	return nil
}

// Match tests if a theme matches every condition.
func (f *FilterExpr) Match(t model.Theme) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(t) {
			return false
		}
	}
	return true
}

// Match tests if a theme matches this condition.
func (c *FilterCondition) Match(t model.Theme) bool {
	switch c.Field {
	case "name":
		return c.matchString(t.Name)
	case "key":
		return c.matchString(t.Key)
	case "id":
		return c.matchInt(t.ID)
	case "build":
		build, err := strconv.Atoi(t.Build)
		if err != nil {
			return false
		}
		return c.matchInt(build)
	case "modified":
		modified, ok := t.ModifiedTime()
		return ok && c.matchRecency(modified)
	default:
		return false
	}
}

func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.Value
	case FilterOpNotEqual:
		return fieldValue != c.Value
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

func (c *FilterCondition) matchInt(fieldValue int) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.intVal
	case FilterOpNotEqual:
		return fieldValue != c.intVal
	case FilterOpGreater:
		return fieldValue > c.intVal
	case FilterOpLess:
		return fieldValue < c.intVal
	case FilterOpGreaterEq:
		return fieldValue >= c.intVal
	case FilterOpLessEq:
		return fieldValue <= c.intVal
	default:
		return false
	}
}

// matchRecency compares age: "<" means newer than the cutoff.
func (c *FilterCondition) matchRecency(ts time.Time) bool {
	switch c.Operator {
	case FilterOpLess, FilterOpLessEq:
		return !ts.Before(c.cutoffTS)
	case FilterOpGreater, FilterOpGreaterEq:
		return ts.Before(c.cutoffTS)
	default:
		return false
	}
}

// FilterWithExpr filters themes using a filter expression.
func FilterWithExpr(themes []model.Theme, expr *FilterExpr) []model.Theme {
	if expr == nil || len(expr.Conditions) == 0 {
		return themes
	}

	result := make([]model.Theme, 0, len(themes))
	for _, t := range themes {
		if expr.Match(t) {
			result = append(result, t)
		}
	}
	return result
}
