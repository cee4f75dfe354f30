package provision

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/AdrianMeDev/dev-env/internal/archive"
	"github.com/AdrianMeDev/dev-env/internal/logger"
	"github.com/AdrianMeDev/dev-env/internal/system"
)

// githubRelease is the slice of the GitHub release JSON response the pipeline
// cares about: the tag plus the downloadable assets.
type githubRelease struct {
	TagName string         `json:"tag_name"` // The release tag (e.g., v0.40.2)
	Assets  []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name               string `json:"name"`                 // Asset filename
	BrowserDownloadURL string `json:"browser_download_url"` // Direct download URL
}

// latestReleaseURL is the GitHub API endpoint for a repository's most recent
// release.
const latestReleaseURL = "https://api.github.com/repos/%s/releases/latest"

// latestRelease fetches and decodes the latest release metadata for repo. A
// response without a tag_name is an error: there is no version to install and
// the asset list is almost certainly empty too.
func latestRelease(sys system.System, repo string) (*githubRelease, error) {
	url := fmt.Sprintf(latestReleaseURL, repo)
	logger.Debug("[DEBUG] Fetching GitHub release from URL: %s\n", url)

	body, err := sys.Fetch(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release metadata for %s: %w", repo, err)
	}

	var release githubRelease
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to decode release JSON for %s: %w", repo, err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release metadata for %s has no tag_name", repo)
	}

	logger.Debug("[DEBUG] Release tag: %s with %d assets\n", release.TagName, len(release.Assets))
	return &release, nil
}

// releasePatterns returns the asset-name substrings that identify a Linux
// build for this machine's architecture. Projects disagree on naming, so
// several spellings are tried in preference order.
func releasePatterns() []string {
	if runtime.GOARCH == "arm64" {
		return []string{"linux_arm64", "linux-arm64", "linux_aarch64", "linux-aarch64"}
	}
	return []string{"linux_x86_64", "linux-x86_64", "linux_amd64", "linux-amd64"}
}

// matchAsset picks the first asset whose lowercased name contains one of the
// platform patterns and carries a supported archive suffix.
func matchAsset(release *githubRelease, patterns []string) (releaseAsset, error) {
	for _, pattern := range patterns {
		for _, asset := range release.Assets {
			name := strings.ToLower(asset.Name)
			if strings.Contains(name, pattern) && archive.Supported(name) {
				logger.Debug("[DEBUG] Found matching asset: %s\n", asset.Name)
				return asset, nil
			}
		}
	}
	return releaseAsset{}, fmt.Errorf("no asset in release %s matches %s", release.TagName, strings.Join(patterns, ", "))
}
