package provision

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/afero"
)

func TestInstallCoreUtilities(t *testing.T) {
	p, fake := newTestProvisioner()

	require.NoError(t, p.InstallCoreUtilities())

	assert.Equal(t, []string{
		"sudo apt install -y nala",
		"sudo nala install -y git ripgrep",
	}, fake.Commands)

	// The fd compatibility link points at the resolved fdfind binary.
	assert.Equal(t, "/usr/bin/fdfind", fake.Symlinks["/home/u/.local/bin/fd"])
}

func TestInstallCoreUtilitiesSkipsExistingLink(t *testing.T) {
	p, fake := newTestProvisioner()
	require.NoError(t, afero.WriteFile(fake.Fs, "/home/u/.local/bin/fd", []byte("x"), 0755))

	require.NoError(t, p.InstallCoreUtilities())
	assert.Empty(t, fake.Symlinks)
}

func TestInstallCoreUtilitiesToleratesLinkRace(t *testing.T) {
	p, fake := newTestProvisioner()
	// The link appears between the existence check and the link call, e.g. a
	// second bootstrap running in parallel. Already-exists means already done.
	fake.SymlinkErr["/home/u/.local/bin/fd"] = &os.LinkError{
		Op: "symlink", Old: "/usr/bin/fdfind", New: "/home/u/.local/bin/fd", Err: fs.ErrExist,
	}

	require.NoError(t, p.InstallCoreUtilities())
}

func TestInstallCoreUtilitiesLinkFailureIsFatal(t *testing.T) {
	p, fake := newTestProvisioner()
	fake.SymlinkErr["/home/u/.local/bin/fd"] = &os.LinkError{
		Op: "symlink", Old: "/usr/bin/fdfind", New: "/home/u/.local/bin/fd", Err: fs.ErrPermission,
	}

	err := p.InstallCoreUtilities()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to link")
}

func TestInstallCoreUtilitiesUnresolvableLinkTarget(t *testing.T) {
	p, fake := newTestProvisioner()
	fake.MissingPath["fdfind"] = true

	err := p.InstallCoreUtilities()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve fdfind")
}

func TestInstallCoreUtilitiesFrontEndFailureIsFatal(t *testing.T) {
	p, fake := newTestProvisioner()
	fake.CmdErr["sudo apt install -y nala"] = errors.New("held packages")

	err := p.InstallCoreUtilities()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install nala")
	// The core set must not be attempted without its front-end.
	assert.Equal(t, []string{"sudo apt install -y nala"}, fake.Commands)
}

func TestInstallCoreUtilitiesCoreFailureIsFatal(t *testing.T) {
	p, fake := newTestProvisioner()
	fake.CmdErr["sudo nala install -y git ripgrep"] = errors.New("package not found")

	err := p.InstallCoreUtilities()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install core utilities")
	assert.Empty(t, fake.Symlinks)
}
