package config

import (
	"fmt"
	"strings"
)

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid setting found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks every section and returns ValidationErrors when anything is
// out of range.
func (c *Config) Validate() error {
	var errs ValidationErrors
	errs = append(errs, validateCatalog(&c.Catalog)...)
	errs = append(errs, validateLayout(&c.Layout)...)

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if strings.TrimSpace(c.StateDir) == "" {
		errs = append(errs, ValidationError{Field: "state_dir", Message: "cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCatalog(cc *CatalogConfig) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(cc.Source) == "" {
		errs = append(errs, ValidationError{Field: "catalog.source", Message: "cannot be empty"})
	}
	if cc.RenderExt != "" && !strings.HasPrefix(cc.RenderExt, ".") {
		errs = append(errs, ValidationError{Field: "catalog.render_ext", Message: "must start with a dot"})
	}
	if cc.TimeoutSec < 1 {
		errs = append(errs, ValidationError{Field: "catalog.timeout_sec", Message: "must be at least 1"})
	}
	if cc.RetryMax < 0 {
		errs = append(errs, ValidationError{Field: "catalog.retry_max", Message: "cannot be negative"})
	}
	return errs
}

func validateLayout(l *LayoutConfig) ValidationErrors {
	var errs ValidationErrors
	atLeast := func(field string, v, minimum int) {
		if v < minimum {
			errs = append(errs, ValidationError{Field: "layout." + field, Message: fmt.Sprintf("must be at least %d", minimum)})
		}
	}

	atLeast("window_size", l.WindowSize, 1)
	atLeast("buffer_rows", l.BufferRows, 0)
	atLeast("default_row_height", l.DefaultRowHeight, 1)
	atLeast("card_width", l.CardWidth, 8)
	atLeast("column_gap", l.ColumnGap, 0)
	atLeast("header_height", l.HeaderHeight, 1)
	atLeast("summary_height", l.SummaryHeight, 0)
	atLeast("restore_attempts", l.RestoreAttempts, 1)
	atLeast("scroll_settle_ms", l.ScrollSettleMs, 0)
	atLeast("frame_interval_ms", l.FrameIntervalMs, 1)

	if l.HalfRowThreshold <= 0 || l.HalfRowThreshold >= 1 {
		errs = append(errs, ValidationError{Field: "layout.half_row_threshold", Message: "must be between 0 and 1 exclusive"})
	}
	return errs
}
