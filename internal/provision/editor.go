package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AdrianMeDev/dev-env/internal/config"
	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// SetupEditor makes sure the snap daemon is present, installs the editor
// snap, and installs the companion git TUI from its latest GitHub release.
func (p *Provisioner) SetupEditor() error {
	ed := p.cfg.Editor

	// snapd first: on WSL and minimal images it is not there by default.
	logger.Info("[INFO] Installing snapd...\n")
	if err := p.sys.Run("sudo", p.cfg.Packages.FrontEnd, "install", "-y", "snapd"); err != nil {
		return fmt.Errorf("failed to install snapd: %w", err)
	}

	if err := p.snapInstall(ed.Snap, ed.Classic); err != nil {
		return err
	}
	return p.installGitUI(ed.GitUI)
}

// snapInstall installs one snap package, with classic confinement when the
// package needs full filesystem access. Snap treats an already-installed
// package as success, so no existence guard is needed here.
func (p *Provisioner) snapInstall(name string, classic bool) error {
	logger.Info("[INFO] Installing %s snap...\n", name)
	args := []string{"snap", "install", name}
	if classic {
		args = append(args, "--classic")
	}
	if err := p.sys.Run("sudo", args...); err != nil {
		return fmt.Errorf("failed to install snap %s: %w", name, err)
	}
	return nil
}

// installGitUI resolves the latest release of the git TUI, downloads the
// archive for this platform, extracts the single binary, and installs it
// into /usr/local/bin. Temporary artifacts are removed even when a later
// step fails.
func (p *Provisioner) installGitUI(ui config.GitUI) error {
	release, err := latestRelease(p.sys, ui.Repo)
	if err != nil {
		return err
	}
	asset, err := matchAsset(release, releasePatterns())
	if err != nil {
		return err
	}

	tmp := filepath.Join(os.TempDir(), asset.Name)
	logger.Info("[INFO] Downloading %s %s...\n", ui.Binary, release.TagName)
	if err := p.sys.Download(asset.BrowserDownloadURL, tmp); err != nil {
		return fmt.Errorf("failed to download asset %s: %w", asset.Name, err)
	}
	defer p.cleanup(tmp)

	binPath, err := p.sys.ExtractFile(tmp, ui.Binary, os.TempDir())
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", ui.Binary, err)
	}
	defer p.cleanup(binPath)

	// install(1) copies with 0755 in one step.
	if err := p.sys.Run("sudo", "install", binPath, installBinDir); err != nil {
		return fmt.Errorf("failed to install %s: %w", ui.Binary, err)
	}
	logger.Info("[INFO] Installed %s %s\n", ui.Binary, release.TagName)
	return nil
}
