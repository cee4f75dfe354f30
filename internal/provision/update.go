package provision

import (
	"fmt"

	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// UpdateSystem refreshes the apt package index and upgrades everything
// already installed. It runs first so the other stages install against
// current metadata; a failure here halts the pipeline rather than letting
// later installs proceed on a stale index.
func (p *Provisioner) UpdateSystem() error {
	logger.Info("[INFO] Refreshing package index...\n")
	if err := p.sys.Run("sudo", "apt", "update"); err != nil {
		return fmt.Errorf("package index refresh failed: %w", err)
	}

	logger.Info("[INFO] Upgrading installed packages...\n")
	if err := p.sys.Run("sudo", "apt", "upgrade", "-y"); err != nil {
		return fmt.Errorf("package upgrade failed: %w", err)
	}
	return nil
}
