package system

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/afero"

	"github.com/AdrianMeDev/dev-env/internal/archive"
	"github.com/AdrianMeDev/dev-env/internal/logger"
)

// System is the capability set the provisioning stages run against: external
// commands, file state, and network fetches. Stages never touch os/exec or
// net/http directly, so the whole pipeline can be executed against the real
// machine (OS), logged without side effects (DryRun), or driven in-memory in
// tests (Fake).
type System interface {
	// Run executes an external command, streaming its output to the
	// console so the underlying tool's own diagnostics stay visible.
	Run(name string, args ...string) error
	// Output executes an external command and returns its captured stdout.
	Output(name string, args ...string) (string, error)
	// LookPath resolves a binary name against PATH.
	LookPath(name string) (string, error)

	FileExists(path string) bool
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	AppendFile(path string, data []byte) error
	MkdirAll(path string, perm os.FileMode) error
	Symlink(target, link string) error
	Chmod(path string, mode os.FileMode) error
	Remove(path string) error

	// Fetch retrieves a small HTTP response body, e.g. release metadata.
	Fetch(url string) ([]byte, error)
	// Download retrieves url into the file at dest.
	Download(url, dest string) error
	// ExtractFile pulls the named member out of an archive into destDir
	// and returns the extracted file's path.
	ExtractFile(src, member, destDir string) (string, error)
}

// OS is the real backend: commands through os/exec, file state through an
// afero OsFs, network through net/http. No call has a timeout; every external
// invocation blocks until the tool finishes, matching how the pipeline is
// meant to be supervised (a terminal, not a daemon).
type OS struct {
	fs afero.Fs
}

var _ System = (*OS)(nil)

// NewOS returns the backend used for real provisioning runs.
func NewOS() *OS {
	return &OS{fs: afero.NewOsFs()}
}

// joinCmd renders a command line for logs and fake recording.
func joinCmd(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// Run executes the command with the console attached. Stdin stays connected
// so tools that prompt (sudo asking for a password) keep working.
func (s *OS) Run(name string, args ...string) error {
	logger.Debug("[DEBUG] Running command: %s\n", joinCmd(name, args))
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// Output executes the command and captures stdout; stderr is folded into the
// error so a failing tool's diagnostics are not lost.
func (s *OS) Output(name string, args ...string) (string, error) {
	logger.Debug("[DEBUG] Running command: %s\n", joinCmd(name, args))
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w\nstderr: %s", name, err, stderr.String())
	}
	return stdout.String(), nil
}

func (s *OS) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (s *OS) FileExists(path string) bool {
	ok, _ := afero.Exists(s.fs, path)
	return ok
}

func (s *OS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

func (s *OS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(s.fs, path, data, perm)
}

// AppendFile appends to the file, creating it when missing.
func (s *OS) AppendFile(path string, data []byte) error {
	f, err := s.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *OS) MkdirAll(path string, perm os.FileMode) error {
	return s.fs.MkdirAll(path, perm)
}

func (s *OS) Symlink(target, link string) error {
	linker, ok := s.fs.(afero.Linker)
	if !ok {
		return afero.ErrNoSymlink
	}
	return linker.SymlinkIfPossible(target, link)
}

func (s *OS) Chmod(path string, mode os.FileMode) error {
	return s.fs.Chmod(path, mode)
}

func (s *OS) Remove(path string) error {
	return s.fs.Remove(path)
}

// Fetch GETs the URL and returns the whole body. Non-200 responses are
// errors; a body that decodes to garbage is the caller's problem.
func (s *OS) Fetch(url string) ([]byte, error) {
	logger.Debug("[DEBUG] GET %s\n", url)
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s failed: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Download streams the URL into the file at dest.
func (s *OS) Download(url, dest string) error {
	logger.Debug("[DEBUG] Downloading %s to %s\n", url, dest)
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := s.fs.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return out.Close()
}

func (s *OS) ExtractFile(src, member, destDir string) (string, error) {
	return archive.ExtractFile(src, member, destDir)
}
