package config

// Config is the top-level structure describing everything the bootstrap
// pipeline provisions. Every field has a compiled-in default matching a fresh
// Ubuntu/WSL developer setup, so the tool is fully usable with no config file;
// a YAML file only needs to state the values it wants to change.
type Config struct {
	Packages    Packages    `yaml:"packages"`
	Shell       Shell       `yaml:"shell"`
	Editor      Editor      `yaml:"editor"`
	Multiplexer Multiplexer `yaml:"multiplexer"`
	Clipboard   Clipboard   `yaml:"clipboard"`
	Dotfiles    Dotfiles    `yaml:"dotfiles"`
}

// Packages describes the core-utilities stage.
// - FrontEnd: the faster apt front-end installed first and used for every
//   later package install.
// - Core: the fixed set of command-line utilities to install through it.
// - BinDir: user-writable directory where compatibility links are created.
// - Links: compatibility symlinks for utilities whose Ubuntu package installs
//   the binary under a different name.
type Packages struct {
	FrontEnd string   `yaml:"front_end"`
	Core     []string `yaml:"core"`
	BinDir   string   `yaml:"bin_dir"`
	Links    []Link   `yaml:"links"`
}

// Link is one compatibility symlink: Name is the link to create in BinDir,
// Target is the binary name it should resolve to (looked up on PATH).
type Link struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
}

// Shell describes the shell-setup stage: the alternative login shell, its
// community configuration framework, and the enhancement plugins cloned into
// the framework's custom plugin directory.
type Shell struct {
	Name         string   `yaml:"name"`
	RCFile       string   `yaml:"rc_file"`
	FrameworkURL string   `yaml:"framework_url"`
	FrameworkDir string   `yaml:"framework_dir"`
	Plugins      []Plugin `yaml:"plugins"`
}

// Plugin is one shell enhancement plugin: directory name and git clone URL.
type Plugin struct {
	Name string `yaml:"name"`
	Repo string `yaml:"repo"`
}

// Editor describes the editor-setup stage: the editor snap package plus the
// companion git TUI installed from its latest GitHub release.
type Editor struct {
	Snap    string `yaml:"snap"`
	Classic bool   `yaml:"classic"`
	GitUI   GitUI  `yaml:"git_ui"`
}

// GitUI identifies the git TUI release source.
// - Repo: GitHub owner/name queried for the latest release.
// - Binary: the single file extracted from the release archive and installed.
type GitUI struct {
	Repo   string `yaml:"repo"`
	Binary string `yaml:"binary"`
}

// Multiplexer describes the terminal-multiplexer stage: the snap package and
// the path where its default configuration is materialized.
type Multiplexer struct {
	Snap       string `yaml:"snap"`
	Classic    bool   `yaml:"classic"`
	ConfigFile string `yaml:"config_file"`
}

// Clipboard describes the WSL clipboard bridge: the fixed release archive URL
// and the single executable extracted from it.
type Clipboard struct {
	URL    string `yaml:"url"`
	Binary string `yaml:"binary"`
}

// Dotfiles describes the dotfiles-clone stage. Repo is operator-supplied
// (config file, DEV_ENV_DOTFILES_REPO, or --dotfiles-repo flag); while it is
// empty the stage logs a skip instead of cloning.
type Dotfiles struct {
	Repo string `yaml:"repo"`
	Path string `yaml:"path"`
}
