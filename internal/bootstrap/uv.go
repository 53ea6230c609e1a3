// Package bootstrap installs the uv package manager from its GitHub
// releases when the user asks for it during the prerequisite check.
package bootstrap

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jeevanism/win-odoo-installer/internal/extract"
	"github.com/jeevanism/win-odoo-installer/internal/logger"
)

// releaseURL points at the latest uv release metadata.
const releaseURL = "https://api.github.com/repos/astral-sh/uv/releases/latest"

// Release mirrors the fields of a GitHub release JSON response that the
// bootstrap needs.
type Release struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// InstallUV resolves the latest uv release, downloads the asset for the
// local OS/arch, extracts it, and copies the uv binary into binDir.
// It returns the installed binary path. The caller is responsible for
// telling the user to restart; a binary placed on PATH mid-process is
// not re-probed.
func InstallUV(binDir string) (string, error) {
	release, err := fetchRelease(releaseURL)
	if err != nil {
		return "", err
	}
	logger.Debug("[DEBUG] Latest uv release: %s with %d assets\n", release.TagName, len(release.Assets))

	assetURL, assetName := matchAsset(release, assetPatterns(runtime.GOOS, runtime.GOARCH))
	if assetURL == "" {
		return "", fmt.Errorf("no uv release asset found for OS=%s ARCH=%s in %s", runtime.GOOS, runtime.GOARCH, release.TagName)
	}

	archivePath := filepath.Join(os.TempDir(), path.Base(assetURL))
	logger.Info("[INFO] Downloading %s to %s\n", assetName, archivePath)
	if err := DownloadFile(assetURL, archivePath); err != nil {
		return "", fmt.Errorf("failed to download uv asset %s: %w", assetName, err)
	}

	extracted, err := extract.Archive(archivePath, os.TempDir())
	if err != nil {
		return "", fmt.Errorf("failed to extract uv archive: %w", err)
	}
	binary, err := extract.FindExecutable(extracted, "uv")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(binDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create bin directory %s: %w", binDir, err)
	}
	installed := filepath.Join(binDir, filepath.Base(binary))
	if err := copyFile(binary, installed, 0755); err != nil {
		return "", fmt.Errorf("failed to install uv binary: %w", err)
	}

	logger.Info("[INFO] Installed uv %s to %s\n", release.TagName, installed)
	return installed, nil
}

func fetchRelease(url string) (*Release, error) {
	logger.Debug("[DEBUG] Fetching uv release from URL: %s\n", url)
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET error fetching uv release: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uv release fetch failed: HTTP status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode uv release JSON: %w", err)
	}
	return &release, nil
}

// assetPatterns returns the substrings that identify the uv archive for
// an OS/arch pair, following uv's target-triple asset naming.
func assetPatterns(goos, goarch string) []string {
	arch := map[string]string{
		"amd64": "x86_64",
		"arm64": "aarch64",
	}[goarch]
	if arch == "" {
		arch = goarch
	}

	switch goos {
	case "windows":
		return []string{arch + "-pc-windows-msvc"}
	case "darwin":
		return []string{arch + "-apple-darwin"}
	default:
		return []string{arch + "-unknown-linux-gnu", arch + "-unknown-linux-musl"}
	}
}

// matchAsset finds the first release asset whose name contains one of
// the patterns and carries a supported archive extension.
func matchAsset(release *Release, patterns []string) (url, name string) {
	for _, pattern := range patterns {
		for _, asset := range release.Assets {
			lower := strings.ToLower(asset.Name)
			if !strings.Contains(lower, pattern) {
				continue
			}
			if strings.HasSuffix(lower, ".zip") ||
				strings.HasSuffix(lower, ".tar.gz") ||
				strings.HasSuffix(lower, ".tgz") ||
				strings.HasSuffix(lower, ".tar.xz") {
				logger.Debug("[DEBUG] Found matching asset: %s\n", asset.Name)
				return asset.BrowserDownloadURL, asset.Name
			}
		}
	}
	return "", ""
}

// DownloadFile downloads the content at url into destPath. It is also
// used by the install flow for the requirements prefetch and the libsass
// wheel fallback.
func DownloadFile(url, destPath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to GET %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] Downloaded %s to %s\n", url, destPath)
	return nil
}

// copyFile copies src to dst with the given mode, creating missing
// directories in the destination path.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	return nil
}
