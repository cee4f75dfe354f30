package provision

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/afero"
)

const wsl2Kernel = "Linux version 5.15.90.1-microsoft-standard-WSL2 (oe-user@oe-host) #1 SMP"
const wsl1Kernel = "Linux version 4.4.0-19041-Microsoft (Microsoft@Microsoft.com) #1237-Microsoft"
const plainKernel = "Linux version 6.5.0-41-generic (buildd@lcy02) #41-Ubuntu SMP"

func TestRunningUnderWSL(t *testing.T) {
	tests := []struct {
		name    string
		kernel  string
		missing bool
		want    bool
	}{
		{name: "wsl2 kernel", kernel: wsl2Kernel, want: true},
		{name: "wsl1 kernel", kernel: wsl1Kernel, want: true},
		{name: "plain ubuntu kernel", kernel: plainKernel, want: false},
		// Matching is case-sensitive: a bare lowercase vendor string
		// without the WSL marker does not count.
		{name: "lowercase microsoft only", kernel: "Linux version 5.0 microsoft-custom", want: false},
		{name: "version file unreadable", missing: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, fake := newTestProvisioner()
			if !tt.missing {
				require.NoError(t, afero.WriteFile(fake.Fs, kernelVersionFile, []byte(tt.kernel), 0444))
			}
			assert.Equal(t, tt.want, p.runningUnderWSL())
		})
	}
}

func TestInstallClipboardBridgeSkipsOutsideWSL(t *testing.T) {
	p, fake := newTestProvisioner()
	require.NoError(t, afero.WriteFile(fake.Fs, kernelVersionFile, []byte(plainKernel), 0444))

	require.NoError(t, p.InstallClipboardBridge())

	assert.Empty(t, fake.Downloads)
	assert.Empty(t, fake.Commands)
}

func TestInstallClipboardBridgeUnderWSL(t *testing.T) {
	p, fake := newTestProvisioner()
	require.NoError(t, afero.WriteFile(fake.Fs, kernelVersionFile, []byte(wsl2Kernel), 0444))

	require.NoError(t, p.InstallClipboardBridge())

	assert.Equal(t, []string{"https://example.com/win32yank-x64.zip"}, fake.Downloads)

	require.Len(t, fake.Extracts, 1)
	assert.Equal(t, "win32yank.exe", fake.Extracts[0].Member)

	exe := filepath.Join(os.TempDir(), "win32yank.exe")
	assert.Equal(t, []string{"sudo mv " + exe + " /usr/local/bin"}, fake.Commands)

	// The downloaded zip is cleaned up.
	zip := filepath.Join(os.TempDir(), "win32yank-x64.zip")
	assert.Contains(t, fake.Removed, zip)
}

func TestInstallClipboardBridgeDownloadFailure(t *testing.T) {
	p, fake := newTestProvisioner()
	require.NoError(t, afero.WriteFile(fake.Fs, kernelVersionFile, []byte(wsl2Kernel), 0444))
	fake.DownloadErr["https://example.com/win32yank-x64.zip"] = errors.New("HTTP status 502")

	err := p.InstallClipboardBridge()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download clipboard bridge")
	assert.Empty(t, fake.Commands)
}

func TestInstallClipboardBridgeExtractFailure(t *testing.T) {
	p, fake := newTestProvisioner()
	require.NoError(t, afero.WriteFile(fake.Fs, kernelVersionFile, []byte(wsl2Kernel), 0444))
	fake.ExtractErr = errors.New("corrupt zip")

	err := p.InstallClipboardBridge()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract win32yank.exe")
	// The broken download is still cleaned up.
	assert.Contains(t, fake.Removed, filepath.Join(os.TempDir(), "win32yank-x64.zip"))
}
