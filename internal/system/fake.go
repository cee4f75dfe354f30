package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"
)

// ExtractCall records one ExtractFile invocation on the Fake.
type ExtractCall struct {
	Src     string
	Member  string
	DestDir string
}

// Fake is an in-memory System for tests. Every call is recorded, responses
// are configurable, and file state lives in an afero MemMapFs, so stage
// behavior can be asserted down to the exact commands issued without touching
// the machine.
type Fake struct {
	Fs afero.Fs

	// Recorded calls, in invocation order.
	Commands  []string // Run and Output command lines, space-joined
	Fetches   []string
	Downloads []string
	Extracts  []ExtractCall
	Removed   []string
	Symlinks  map[string]string // link path -> target
	Appends   []string          // paths passed to AppendFile

	// Configurable responses.
	CmdErr      map[string]error  // keyed by the space-joined command line
	CmdOutput   map[string]string // canned Output results, same key
	FetchBody   map[string][]byte // canned Fetch bodies, keyed by URL
	FetchErr    map[string]error
	DownloadErr map[string]error
	SymlinkErr  map[string]error // keyed by link path
	ExtractErr  error
	MissingPath map[string]bool // binaries LookPath should not find
}

var _ System = (*Fake)(nil)

// NewFake returns a Fake with an empty filesystem and no configured
// responses: every command succeeds, every binary resolves, every download
// lands.
func NewFake() *Fake {
	return &Fake{
		Fs:          afero.NewMemMapFs(),
		Symlinks:    map[string]string{},
		CmdErr:      map[string]error{},
		CmdOutput:   map[string]string{},
		FetchBody:   map[string][]byte{},
		FetchErr:    map[string]error{},
		DownloadErr: map[string]error{},
		SymlinkErr:  map[string]error{},
		MissingPath: map[string]bool{},
	}
}

func (f *Fake) Run(name string, args ...string) error {
	cmd := joinCmd(name, args)
	f.Commands = append(f.Commands, cmd)
	return f.CmdErr[cmd]
}

func (f *Fake) Output(name string, args ...string) (string, error) {
	cmd := joinCmd(name, args)
	f.Commands = append(f.Commands, cmd)
	if err := f.CmdErr[cmd]; err != nil {
		return "", err
	}
	return f.CmdOutput[cmd], nil
}

func (f *Fake) LookPath(name string) (string, error) {
	if f.MissingPath[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

func (f *Fake) FileExists(path string) bool {
	ok, _ := afero.Exists(f.Fs, path)
	return ok
}

func (f *Fake) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(f.Fs, path)
}

func (f *Fake) WriteFile(path string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(f.Fs, path, data, perm)
}

func (f *Fake) AppendFile(path string, data []byte) error {
	f.Appends = append(f.Appends, path)
	existing, err := afero.ReadFile(f.Fs, path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return afero.WriteFile(f.Fs, path, append(existing, data...), 0644)
}

func (f *Fake) MkdirAll(path string, perm os.FileMode) error {
	return f.Fs.MkdirAll(path, perm)
}

// Symlink records the link and drops a marker file in its place. MemMapFs
// cannot create real symlinks; a file whose content is the target is enough
// for the existence checks the stages perform.
func (f *Fake) Symlink(target, link string) error {
	if err := f.SymlinkErr[link]; err != nil {
		return err
	}
	if f.FileExists(link) {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: fs.ErrExist}
	}
	f.Symlinks[link] = target
	return afero.WriteFile(f.Fs, link, []byte(target), 0777)
}

func (f *Fake) Chmod(path string, mode os.FileMode) error {
	return f.Fs.Chmod(path, mode)
}

func (f *Fake) Remove(path string) error {
	f.Removed = append(f.Removed, path)
	return f.Fs.Remove(path)
}

func (f *Fake) Fetch(url string) ([]byte, error) {
	f.Fetches = append(f.Fetches, url)
	if err := f.FetchErr[url]; err != nil {
		return nil, err
	}
	body, ok := f.FetchBody[url]
	if !ok {
		return nil, fmt.Errorf("no response configured for %s", url)
	}
	return body, nil
}

func (f *Fake) Download(url, dest string) error {
	f.Downloads = append(f.Downloads, url)
	if err := f.DownloadErr[url]; err != nil {
		return err
	}
	return afero.WriteFile(f.Fs, dest, []byte("downloaded from "+url), 0644)
}

func (f *Fake) ExtractFile(src, member, destDir string) (string, error) {
	f.Extracts = append(f.Extracts, ExtractCall{Src: src, Member: member, DestDir: destDir})
	if f.ExtractErr != nil {
		return "", f.ExtractErr
	}
	if !f.FileExists(src) {
		return "", fmt.Errorf("archive %s does not exist", src)
	}
	target := filepath.Join(destDir, member)
	if err := afero.WriteFile(f.Fs, target, []byte("binary "+member), 0755); err != nil {
		return "", err
	}
	return target, nil
}
