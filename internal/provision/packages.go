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

// InstallCoreUtilities installs the preferred apt front-end, the core set of
// command-line utilities through it, and the compatibility symlinks for tools
// whose Ubuntu package installs under a different binary name.
func (p *Provisioner) InstallCoreUtilities() error {
	pkgs := p.cfg.Packages

	// The front-end itself always comes from plain apt.
	logger.Info("[INFO] Installing %s...\n", pkgs.FrontEnd)
	if err := p.sys.Run("sudo", "apt", "install", "-y", pkgs.FrontEnd); err != nil {
		return fmt.Errorf("failed to install %s: %w", pkgs.FrontEnd, err)
	}

	// Everything else goes through the front-end, in one transaction.
	logger.Info("[INFO] Installing core utilities: %s\n", strings.Join(pkgs.Core, " "))
	args := append([]string{pkgs.FrontEnd, "install", "-y"}, pkgs.Core...)
	if err := p.sys.Run("sudo", args...); err != nil {
		return fmt.Errorf("failed to install core utilities: %w", err)
	}

	for _, link := range pkgs.Links {
		if err := p.ensureLink(link, pkgs.BinDir); err != nil {
			return err
		}
	}
	return nil
}

// ensureLink creates one compatibility symlink in binDir. A path that already
// exists is left alone, and an already-exists error from the link call is
// tolerated too, so re-runs stay quiet. An unresolvable target is fatal: the
// install that should have provided it did not work.
func (p *Provisioner) ensureLink(link config.Link, binDir string) error {
	linkPath := filepath.Join(binDir, link.Name)
	if p.sys.FileExists(linkPath) {
		logger.Info("[INFO] Link %s already exists. Skipping.\n", linkPath)
		return nil
	}

	target, err := p.sys.LookPath(link.Target)
	if err != nil {
		return fmt.Errorf("cannot resolve %s for link %s: %w", link.Target, link.Name, err)
	}

	if err := p.sys.MkdirAll(binDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", binDir, err)
	}
	if err := p.sys.Symlink(target, linkPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			logger.Debug("[DEBUG] Link %s appeared underneath us. Ignoring.\n", linkPath)
			return nil
		}
		return fmt.Errorf("failed to link %s to %s: %w", linkPath, target, err)
	}
	logger.Info("[INFO] Linked %s to %s\n", linkPath, target)
	return nil
}
