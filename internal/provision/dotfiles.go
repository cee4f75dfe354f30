package provision

import (
	"fmt"

	"github.com/AdrianMeDev/dev-env/internal/config"
	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// CloneDotfiles clones the operator's dotfiles repository into its configured
// path. This is initial bootstrap only: an existing clone is never pulled or
// otherwise touched, so local edits stay intact. A missing repository URL is
// a skip with a warning, not an error, because the rest of the machine is
// perfectly usable without dotfiles.
func (p *Provisioner) CloneDotfiles() error {
	df := p.cfg.Dotfiles

	if df.Repo == "" {
		logger.Warn("[WARN] No dotfiles repository configured. Set dotfiles.repo in the config file, %s, or --dotfiles-repo. Skipping.\n", config.EnvDotfilesRepo)
		return nil
	}
	if p.sys.FileExists(df.Path) {
		logger.Info("[INFO] %s already exists. Leaving it untouched.\n", df.Path)
		return nil
	}

	logger.Info("[INFO] Cloning %s into %s...\n", df.Repo, df.Path)
	if err := p.sys.Run("git", "clone", df.Repo, df.Path); err != nil {
		return fmt.Errorf("failed to clone dotfiles: %w", err)
	}
	return nil
}
