package provision

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// kernelVersionFile names the running kernel; under WSL the string mentions
// the Microsoft kernel.
const kernelVersionFile = "/proc/version"

// wslPatterns are the case-sensitive substrings that identify a WSL kernel.
var wslPatterns = []string{"Microsoft", "WSL"}

// InstallClipboardBridge installs the Windows clipboard bridge binary when
// running under WSL. On any other host the stage logs a skip and succeeds
// without touching the network.
func (p *Provisioner) InstallClipboardBridge() error {
	if !p.runningUnderWSL() {
		logger.Info("[INFO] Not running under WSL. Skipping clipboard bridge.\n")
		return nil
	}
	cb := p.cfg.Clipboard

	tmp := filepath.Join(os.TempDir(), path.Base(cb.URL))
	logger.Info("[INFO] Downloading clipboard bridge...\n")
	if err := p.sys.Download(cb.URL, tmp); err != nil {
		return fmt.Errorf("failed to download clipboard bridge: %w", err)
	}
	defer p.cleanup(tmp)

	exe, err := p.sys.ExtractFile(tmp, cb.Binary, os.TempDir())
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", cb.Binary, err)
	}
	if err := p.sys.Chmod(exe, 0755); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", exe, err)
	}

	if err := p.sys.Run("sudo", "mv", exe, installBinDir); err != nil {
		return fmt.Errorf("failed to install %s: %w", cb.Binary, err)
	}
	logger.Info("[INFO] Installed %s to %s\n", cb.Binary, installBinDir)
	return nil
}

// runningUnderWSL inspects the kernel version string for the WSL markers. An
// unreadable version file counts as no match: better to skip the bridge than
// to fail the pipeline on an exotic host.
func (p *Provisioner) runningUnderWSL() bool {
	data, err := p.sys.ReadFile(kernelVersionFile)
	if err != nil {
		logger.Debug("[DEBUG] Cannot read %s: %v\n", kernelVersionFile, err)
		return false
	}
	kernel := string(data)
	for _, pattern := range wslPatterns {
		if strings.Contains(kernel, pattern) {
			return true
		}
	}
	return false
}
