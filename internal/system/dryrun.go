package system

import (
	"os"
	"path/filepath"

	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// DryRun wraps a System and turns every mutating call into a log line while
// leaving the machine alone. Read-only probes delegate to the wrapped
// backend, so the logged plan reflects what a real run would actually do on
// this machine.
type DryRun struct {
	real System
}

var _ System = (*DryRun)(nil)

// NewDryRun wraps the given backend, usually the OS one.
func NewDryRun(real System) *DryRun {
	return &DryRun{real: real}
}

func (d *DryRun) LookPath(name string) (string, error) {
	return d.real.LookPath(name)
}

func (d *DryRun) FileExists(path string) bool {
	return d.real.FileExists(path)
}

func (d *DryRun) ReadFile(path string) ([]byte, error) {
	return d.real.ReadFile(path)
}

// Fetch stays real so the plan can name the release it would download.
func (d *DryRun) Fetch(url string) ([]byte, error) {
	return d.real.Fetch(url)
}

func (d *DryRun) Run(name string, args ...string) error {
	logger.Info("[DRY-RUN] Would run: %s\n", joinCmd(name, args))
	return nil
}

// Output logs the command and returns an empty result; callers that feed the
// output into a write see that write dry-logged as well.
func (d *DryRun) Output(name string, args ...string) (string, error) {
	logger.Info("[DRY-RUN] Would run: %s\n", joinCmd(name, args))
	return "", nil
}

func (d *DryRun) WriteFile(path string, data []byte, perm os.FileMode) error {
	logger.Info("[DRY-RUN] Would write %d bytes to %s\n", len(data), path)
	return nil
}

func (d *DryRun) AppendFile(path string, data []byte) error {
	logger.Info("[DRY-RUN] Would append %d bytes to %s\n", len(data), path)
	return nil
}

func (d *DryRun) MkdirAll(path string, perm os.FileMode) error {
	logger.Info("[DRY-RUN] Would create directory %s\n", path)
	return nil
}

func (d *DryRun) Symlink(target, link string) error {
	logger.Info("[DRY-RUN] Would link %s to %s\n", link, target)
	return nil
}

func (d *DryRun) Chmod(path string, mode os.FileMode) error {
	logger.Info("[DRY-RUN] Would chmod %s to %v\n", path, mode)
	return nil
}

func (d *DryRun) Remove(path string) error {
	logger.Info("[DRY-RUN] Would remove %s\n", path)
	return nil
}

func (d *DryRun) Download(url, dest string) error {
	logger.Info("[DRY-RUN] Would download %s to %s\n", url, dest)
	return nil
}

func (d *DryRun) ExtractFile(src, member, destDir string) (string, error) {
	logger.Info("[DRY-RUN] Would extract %s from %s\n", member, src)
	return filepath.Join(destDir, member), nil
}
