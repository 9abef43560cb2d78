// Package ack stores the one local acknowledgement the browser keeps: that the
// first-run disclaimer was accepted.
package ack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the flag file inside the state directory.
const FileName = "disclaimer-ack"

// Flag is a presence-only marker file.
type Flag struct {
	path string
}

// New returns the flag stored in dir.
func New(dir string) Flag {
	return Flag{path: filepath.Join(dir, FileName)}
}

func (f Flag) Path() string {
	return f.path
}

// Acknowledged reports whether the flag file exists. Errors other than the
// file being absent are returned so the caller can decide to show the
// disclaimer anyway.
func (f Flag) Acknowledged() (bool, error) {
	_, err := os.Stat(f.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("check acknowledgement: %w", err)
	}
}

// Acknowledge writes the flag, recording when it happened.
func (f Flag) Acknowledge(now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(now.UTC().Format(time.RFC3339)+"\n"), 0o600); err != nil {
		return fmt.Errorf("write acknowledgement: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save acknowledgement: %w", err)
	}
	return nil
}

// Reset removes the flag so the disclaimer shows again.
func (f Flag) Reset() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove acknowledgement: %w", err)
	}
	return nil
}
