package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// EnvDotfilesRepo overrides dotfiles.repo when set in the environment.
const EnvDotfilesRepo = "DEV_ENV_DOTFILES_REPO"

// Default returns the compiled-in configuration: the fixed package set, shell,
// editor, multiplexer and clipboard bridge the bootstrap provisions on a fresh
// Ubuntu/WSL machine. Paths are left in ~ form; Load expands them.
func Default() *Config {
	return &Config{
		Packages: Packages{
			FrontEnd: "nala",
			Core: []string{
				"build-essential", "git", "unzip", "tree",
				"ripgrep", "fd-find", "eza", "curl", "wget",
			},
			BinDir: "~/.local/bin",
			Links: []Link{
				// fd-find packages the binary as fdfind on Ubuntu.
				{Name: "fd", Target: "fdfind"},
			},
		},
		Shell: Shell{
			Name:         "zsh",
			RCFile:       "~/.zshrc",
			FrameworkURL: "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh",
			FrameworkDir: "~/.oh-my-zsh",
			Plugins: []Plugin{
				{Name: "zsh-autosuggestions", Repo: "https://github.com/zsh-users/zsh-autosuggestions"},
				{Name: "zsh-syntax-highlighting", Repo: "https://github.com/zsh-users/zsh-syntax-highlighting"},
			},
		},
		Editor: Editor{
			Snap:    "nvim",
			Classic: true,
			GitUI: GitUI{
				Repo:   "jesseduffield/lazygit",
				Binary: "lazygit",
			},
		},
		Multiplexer: Multiplexer{
			Snap:       "zellij",
			Classic:    true,
			ConfigFile: filepath.Join(xdg.ConfigHome, "zellij", "config.kdl"),
		},
		Clipboard: Clipboard{
			URL:    "https://github.com/equalsraf/win32yank/releases/latest/download/win32yank-x64.zip",
			Binary: "win32yank.exe",
		},
		Dotfiles: Dotfiles{
			Repo: "", // operator-supplied; empty means the clone stage skips
			Path: "~/dotfiles",
		},
	}
}

// DefaultPath is where Load looks for a config file when --config is not
// given. Respects XDG_CONFIG_HOME.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "dev-env", "config.yaml")
}

// Load builds the effective configuration: compiled-in defaults, overlaid with
// the YAML file at path (or DefaultPath when path is empty), then the
// environment override for the dotfiles repository, then ~ expansion on every
// path field. A missing file is only an error when the path was given
// explicitly; the default location is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
		// No config file at the default location: run with defaults.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if repo := os.Getenv(EnvDotfilesRepo); repo != "" {
		cfg.Dotfiles.Repo = repo
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandPaths rewrites every ~-prefixed path field to an absolute path under
// the current user's home directory.
func (c *Config) expandPaths() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}
	c.Packages.BinDir = expand(c.Packages.BinDir, home)
	c.Shell.RCFile = expand(c.Shell.RCFile, home)
	c.Shell.FrameworkDir = expand(c.Shell.FrameworkDir, home)
	c.Multiplexer.ConfigFile = expand(c.Multiplexer.ConfigFile, home)
	c.Dotfiles.Path = expand(c.Dotfiles.Path, home)
	return nil
}

// expand replaces a leading ~ with the home directory. Paths without the
// prefix pass through untouched.
func expand(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, strings.TrimPrefix(path, "~/"))
	}
	return path
}
