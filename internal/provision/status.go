package provision

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/AdrianMeDev/dev-env/internal/system"
)

// Check is one read-only probe of machine state a stage is responsible for.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Checks probes the machine through the execution backend and reports which
// provisioning guards are currently satisfied. Nothing is mutated, so this is
// safe to run at any time, including mid-failure.
func (p *Provisioner) Checks() []Check {
	var checks []Check

	checks = append(checks, p.binaryCheck("package front-end", p.cfg.Packages.FrontEnd))
	for _, link := range p.cfg.Packages.Links {
		linkPath := filepath.Join(p.cfg.Packages.BinDir, link.Name)
		checks = append(checks, existsCheck(p.sys, fmt.Sprintf("link %s", link.Name), linkPath))
	}

	checks = append(checks, p.loginShellCheck())
	checks = append(checks, existsCheck(p.sys, "shell framework", p.cfg.Shell.FrameworkDir))
	for _, plugin := range p.cfg.Shell.Plugins {
		dest := filepath.Join(p.pluginsDir(p.cfg.Shell), plugin.Name)
		checks = append(checks, existsCheck(p.sys, fmt.Sprintf("plugin %s", plugin.Name), dest))
	}

	checks = append(checks, p.binaryCheck("editor", p.cfg.Editor.Snap))
	checks = append(checks, p.binaryCheck("git TUI", p.cfg.Editor.GitUI.Binary))

	checks = append(checks, p.binaryCheck("multiplexer", p.cfg.Multiplexer.Snap))
	checks = append(checks, existsCheck(p.sys, "multiplexer config", p.cfg.Multiplexer.ConfigFile))
	checks = append(checks, p.autoStartCheck())

	// The bridge only matters under WSL; elsewhere the row would always
	// read missing and just be noise.
	if p.runningUnderWSL() {
		checks = append(checks, existsCheck(p.sys, "clipboard bridge", filepath.Join(installBinDir, p.cfg.Clipboard.Binary)))
	}

	checks = append(checks, existsCheck(p.sys, "dotfiles clone", p.cfg.Dotfiles.Path))
	return checks
}

// binaryCheck probes PATH for a binary.
func (p *Provisioner) binaryCheck(name, binary string) Check {
	resolved, err := p.sys.LookPath(binary)
	if err != nil {
		return Check{Name: name, Detail: binary + " not on PATH"}
	}
	return Check{Name: name, OK: true, Detail: resolved}
}

// existsCheck probes for a file or directory.
func existsCheck(sys system.System, name, path string) Check {
	return Check{Name: name, OK: sys.FileExists(path), Detail: path}
}

// loginShellCheck reads the account's passwd entry and compares its shell
// field against the configured shell.
func (p *Provisioner) loginShellCheck() Check {
	const name = "login shell"

	usr, err := user.Current()
	if err != nil {
		return Check{Name: name, Detail: "cannot determine current user"}
	}
	out, err := p.sys.Output("getent", "passwd", usr.Username)
	if err != nil {
		return Check{Name: name, Detail: "getent failed"}
	}

	fields := strings.Split(strings.TrimSpace(out), ":")
	shell := fields[len(fields)-1]
	return Check{
		Name:   name,
		OK:     shell == p.cfg.Shell.Name || strings.HasSuffix(shell, "/"+p.cfg.Shell.Name),
		Detail: shell,
	}
}

// autoStartCheck reports whether the multiplexer hook line is present in the
// shell rc file.
func (p *Provisioner) autoStartCheck() Check {
	const name = "auto-start hook"
	rc := p.cfg.Shell.RCFile

	data, err := p.sys.ReadFile(rc)
	if err != nil {
		return Check{Name: name, Detail: rc + " not readable"}
	}
	hook := autoStartHook(p.cfg.Multiplexer, p.cfg.Shell.Name)
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == hook {
			return Check{Name: name, OK: true, Detail: rc}
		}
	}
	return Check{Name: name, Detail: "not registered in " + rc}
}
