package provision

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/AdrianMeDev/dev-env/internal/config"
	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// SetupShell installs the configured shell, makes it the account's login
// shell, installs the community configuration framework, and clones the
// enhancement plugins into the framework's plugin directory. The rc file is
// never edited here: enabling the plugins is left to the operator's dotfiles.
func (p *Provisioner) SetupShell() error {
	sh := p.cfg.Shell

	logger.Info("[INFO] Installing %s...\n", sh.Name)
	if err := p.sys.Run("sudo", p.cfg.Packages.FrontEnd, "install", "-y", sh.Name); err != nil {
		return fmt.Errorf("failed to install %s: %w", sh.Name, err)
	}

	if err := p.changeLoginShell(sh.Name); err != nil {
		return err
	}
	if err := p.installFramework(sh); err != nil {
		return err
	}
	p.installPlugins(sh)

	logger.Warn("[WARN] Plugins are cloned but not enabled. Add them to the plugins list in %s yourself; this tool never edits it.\n", sh.RCFile)
	return nil
}

// changeLoginShell points the account's login shell at the freshly installed
// one. chsh rewrites a single passwd field and is safe to repeat.
func (p *Provisioner) changeLoginShell(shell string) error {
	shellPath, err := p.sys.LookPath(shell)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", shell, err)
	}

	usr, err := user.Current()
	if err != nil {
		return fmt.Errorf("failed to determine current user: %w", err)
	}

	logger.Info("[INFO] Setting login shell for %s to %s\n", usr.Username, shellPath)
	if err := p.sys.Run("sudo", "chsh", "-s", shellPath, usr.Username); err != nil {
		return fmt.Errorf("failed to change login shell: %w", err)
	}
	return nil
}

// installFramework downloads the framework's installer script and runs it in
// unattended mode. An existing framework directory means a previous run
// already did this, so the whole step is skipped.
func (p *Provisioner) installFramework(sh config.Shell) error {
	if p.sys.FileExists(sh.FrameworkDir) {
		logger.Info("[INFO] %s already present. Skipping framework install.\n", sh.FrameworkDir)
		return nil
	}

	tmp := filepath.Join(os.TempDir(), "framework-install.sh")
	logger.Info("[INFO] Downloading shell framework installer...\n")
	if err := p.sys.Download(sh.FrameworkURL, tmp); err != nil {
		return fmt.Errorf("failed to download framework installer: %w", err)
	}
	defer p.cleanup(tmp)

	// Unattended mode keeps the installer from swapping the login shell
	// itself or dropping into the new shell mid-pipeline.
	if err := p.sys.Run("sh", tmp, "--unattended"); err != nil {
		return fmt.Errorf("framework install failed: %w", err)
	}
	return nil
}

// installPlugins clones each plugin that is not already present. Plugins are
// optional enhancements, so a failed clone is logged and tolerated rather
// than aborting the pipeline.
func (p *Provisioner) installPlugins(sh config.Shell) {
	pluginsDir := p.pluginsDir(sh)
	for _, plugin := range sh.Plugins {
		dest := filepath.Join(pluginsDir, plugin.Name)
		if p.sys.FileExists(dest) {
			logger.Info("[INFO] Plugin %s already present. Skipping.\n", plugin.Name)
			continue
		}

		logger.Info("[INFO] Cloning plugin %s...\n", plugin.Name)
		if err := p.sys.Run("git", "clone", plugin.Repo, dest); err != nil {
			logger.Warn("[WARN] Failed to clone plugin %s: %v. Continuing.\n", plugin.Name, err)
		}
	}
}

// pluginsDir resolves the framework's plugin directory, honoring ZSH_CUSTOM
// when the operator has relocated the custom tree.
func (p *Provisioner) pluginsDir(sh config.Shell) string {
	custom := os.Getenv("ZSH_CUSTOM")
	if custom == "" {
		custom = filepath.Join(sh.FrameworkDir, "custom")
	}
	return filepath.Join(custom, "plugins")
}
