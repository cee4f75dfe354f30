package provision

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/AdrianMeDev/dev-env/internal/config"
	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// SetupMultiplexer installs the terminal multiplexer, materializes its
// default configuration, and registers the auto-start hook for new
// interactive shells.
func (p *Provisioner) SetupMultiplexer() error {
	mux := p.cfg.Multiplexer

	if err := p.snapInstall(mux.Snap, mux.Classic); err != nil {
		return err
	}
	if err := p.writeDefaultConfig(mux); err != nil {
		return err
	}
	return p.registerAutoStart(mux)
}

// writeDefaultConfig dumps the multiplexer's own default configuration to its
// config path. An existing file is left untouched: it may carry the
// operator's hand edits, and regenerating would silently discard them.
func (p *Provisioner) writeDefaultConfig(mux config.Multiplexer) error {
	if p.sys.FileExists(mux.ConfigFile) {
		logger.Info("[INFO] Config %s already exists. Skipping.\n", mux.ConfigFile)
		return nil
	}

	if err := p.sys.MkdirAll(filepath.Dir(mux.ConfigFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	out, err := p.sys.Output(mux.Snap, "setup", "--dump-config")
	if err != nil {
		return fmt.Errorf("failed to dump default config: %w", err)
	}
	if err := p.sys.WriteFile(mux.ConfigFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mux.ConfigFile, err)
	}
	logger.Info("[INFO] Wrote default config to %s\n", mux.ConfigFile)
	return nil
}

// autoStartHook is the line appended to the shell rc file so every new
// interactive shell launches inside the multiplexer.
func autoStartHook(mux config.Multiplexer, shellName string) string {
	return fmt.Sprintf(`eval "$(%s setup --generate-auto-start %s)"`, mux.Snap, shellName)
}

// registerAutoStart appends the auto-start hook to the shell rc file unless
// an identical line is already there, so repeated runs do not stack
// duplicates.
func (p *Provisioner) registerAutoStart(mux config.Multiplexer) error {
	hook := autoStartHook(mux, p.cfg.Shell.Name)
	rc := p.cfg.Shell.RCFile

	added, err := p.ensureLine(rc, hook)
	if err != nil {
		return fmt.Errorf("failed to register auto-start hook: %w", err)
	}
	if added {
		logger.Info("[INFO] Registered auto-start hook in %s\n", rc)
	} else {
		logger.Info("[INFO] Auto-start hook already registered in %s. Skipping.\n", rc)
	}
	return nil
}

// ensureLine appends line to the file unless the file already contains it
// verbatim, ignoring surrounding whitespace. The file is created when
// missing. Reports whether a write happened.
func (p *Provisioner) ensureLine(path, line string) (bool, error) {
	data, err := p.sys.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == line {
			return false, nil
		}
	}

	entry := line + "\n"
	// A file without a trailing newline would glue the hook onto its last
	// line.
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		entry = "\n" + entry
	}
	if err := p.sys.AppendFile(path, []byte(entry)); err != nil {
		return false, err
	}
	return true, nil
}
