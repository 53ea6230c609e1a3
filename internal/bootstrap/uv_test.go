package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func release(names ...string) *Release {
	r := &Release{TagName: "0.5.0"}
	for _, n := range names {
		r.Assets = append(r.Assets, struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		}{Name: n, BrowserDownloadURL: "https://example.com/" + n})
	}
	return r
}

func TestAssetPatterns(t *testing.T) {
	assert.Equal(t, []string{"x86_64-pc-windows-msvc"}, assetPatterns("windows", "amd64"))
	assert.Equal(t, []string{"aarch64-pc-windows-msvc"}, assetPatterns("windows", "arm64"))
	assert.Equal(t, []string{"aarch64-apple-darwin"}, assetPatterns("darwin", "arm64"))
	assert.Equal(t,
		[]string{"x86_64-unknown-linux-gnu", "x86_64-unknown-linux-musl"},
		assetPatterns("linux", "amd64"))
}

func TestMatchAssetPicksArchiveNotChecksum(t *testing.T) {
	rel := release(
		"uv-x86_64-pc-windows-msvc.zip.sha256",
		"uv-x86_64-pc-windows-msvc.zip",
		"uv-aarch64-apple-darwin.tar.gz",
	)

	url, name := matchAsset(rel, assetPatterns("windows", "amd64"))
	require.NotEmpty(t, url)
	assert.Equal(t, "uv-x86_64-pc-windows-msvc.zip", name)
	assert.Equal(t, "https://example.com/uv-x86_64-pc-windows-msvc.zip", url)
}

func TestMatchAssetPrefersEarlierPattern(t *testing.T) {
	rel := release(
		"uv-x86_64-unknown-linux-musl.tar.gz",
		"uv-x86_64-unknown-linux-gnu.tar.gz",
	)

	_, name := matchAsset(rel, assetPatterns("linux", "amd64"))
	assert.Equal(t, "uv-x86_64-unknown-linux-gnu.tar.gz", name, "gnu build wins over musl when both exist")
}

func TestMatchAssetNoMatch(t *testing.T) {
	rel := release("uv-aarch64-apple-darwin.tar.gz")
	url, _ := matchAsset(rel, assetPatterns("windows", "amd64"))
	assert.Empty(t, url)
}
