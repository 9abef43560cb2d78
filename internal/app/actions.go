package app

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var errClipboardUnavailable = errors.New("no clipboard command found")

var commandBuilder = exec.Command

// handleClipboard copies the shareable query of the current view.
func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.LastError = errClipboardUnavailable
		return true
	}

	query := clipboardText(app.state.ShareQuery())
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(query)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("copy with %s: %w", filepath.Base(app.clipboardCmd[0]), err)
		app.logger.Warn().Err(err).Strs("cmd", app.clipboardCmd).Msg("clipboard copy failed")
		return true
	}

	app.state.LastError = nil
	app.state.LastYankTime = time.Now()
	app.logger.Debug().Str("query", query).Msg("query copied")
	return true
}

func clipboardText(query string) string {
	return "?" + query
}
