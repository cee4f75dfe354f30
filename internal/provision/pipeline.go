package provision

import (
	"fmt"

	"github.com/AdrianMeDev/dev-env/internal/config"
	"github.com/AdrianMeDev/dev-env/internal/logger"
	"github.com/AdrianMeDev/dev-env/internal/system"
)

// Stage names, in pipeline order. The subcommands address single stages by
// these names, and failure messages carry them so the operator knows where a
// run stopped.
const (
	StageSystemUpdate  = "System Update"
	StageCoreUtilities = "Core Utilities"
	StageShell         = "Shell Setup"
	StageEditor        = "Editor Setup"
	StageMultiplexer   = "Multiplexer Setup"
	StageClipboard     = "Clipboard Bridge"
	StageDotfiles      = "Dotfiles"
)

// installBinDir is where release-installed binaries land. It is on PATH for
// every user and survives shell changes.
const installBinDir = "/usr/local/bin"

// Stage is one named provisioning step.
type Stage struct {
	Name string
	Run  func() error
}

// Provisioner binds the provisioning stages to an execution backend and the
// effective configuration.
type Provisioner struct {
	sys system.System
	cfg *config.Config
}

// New returns a Provisioner running against the given backend.
func New(sys system.System, cfg *config.Config) *Provisioner {
	return &Provisioner{sys: sys, cfg: cfg}
}

// Stages returns the full pipeline in its fixed order. Ordering matters:
// later stages assume the package index is fresh and the shell is in place.
func (p *Provisioner) Stages() []Stage {
	return []Stage{
		{Name: StageSystemUpdate, Run: p.UpdateSystem},
		{Name: StageCoreUtilities, Run: p.InstallCoreUtilities},
		{Name: StageShell, Run: p.SetupShell},
		{Name: StageEditor, Run: p.SetupEditor},
		{Name: StageMultiplexer, Run: p.SetupMultiplexer},
		{Name: StageClipboard, Run: p.InstallClipboardBridge},
		{Name: StageDotfiles, Run: p.CloneDotfiles},
	}
}

// Stage looks up a single stage by name.
func (p *Provisioner) Stage(name string) (Stage, error) {
	for _, stage := range p.Stages() {
		if stage.Name == name {
			return stage, nil
		}
	}
	return Stage{}, fmt.Errorf("unknown stage %q", name)
}

// Run executes the given stages in order, printing a banner before each one.
// The first failure aborts the run and the returned error names the failing
// stage. There is no rollback: side effects of earlier stages stay in place,
// and re-running the pipeline is the supported recovery path, since every
// stage skips work it finds already done.
func Run(stages []Stage) error {
	for _, stage := range stages {
		logger.Banner(stage.Name)
		if err := stage.Run(); err != nil {
			return fmt.Errorf("%s stage failed: %w", stage.Name, err)
		}
	}
	return nil
}

// cleanup removes a temporary artifact, logging rather than failing when the
// removal itself goes wrong.
func (p *Provisioner) cleanup(path string) {
	if err := p.sys.Remove(path); err != nil {
		logger.Debug("[DEBUG] Failed to remove %s: %v\n", path, err)
	}
}
