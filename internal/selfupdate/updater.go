package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput selects what to install. An empty TargetVersion means
// "whatever the latest release is"; a set one is installed as-is, which
// permits downgrades.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is a coarse stage report for CLI output.
type UpdateProgress struct {
	Stage   string
	Message string
}

// releaseAsset locates this platform's artifact within a tagged release.
type releaseAsset struct {
	tag     string
	name    string
	url     string
	sumsURL string
	binary  string
}

// Update replaces the running executable with a release build: resolve the
// tag, download this platform's archive next to the executable while
// hashing it, verify the hash against the release's checksums.txt, extract
// the binary, and atomically rename it over the current one. The staging
// directory lives beside the target so the final rename never crosses a
// filesystem boundary.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag, err := c.resolveTag(ctx, input, progress)
	if err != nil {
		return err
	}

	asset, err := c.platformAsset(tag)
	if err != nil {
		return err
	}

	targetPath, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	targetInfo, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("stat executable: %w", err)
	}

	staging, err := os.MkdirTemp(filepath.Dir(targetPath), ".skimr-update-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", tag)})
	wantDigest, err := c.publishedDigest(ctx, asset)
	if err != nil {
		return err
	}
	archivePath := filepath.Join(staging, asset.name)
	gotDigest, err := c.fetchToFile(ctx, asset.url, archivePath)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	if gotDigest != wantDigest {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksum, asset.name, wantDigest, gotDigest)
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	staged := filepath.Join(staging, asset.binary+".next")
	if err := extractBinaryTo(staged, archivePath, asset.binary, targetInfo.Mode()); err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	if err := os.Rename(staged, targetPath); err != nil {
		return fmt.Errorf("install binary: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", tag)})
	return nil
}

// resolveTag decides which release to install. Without an explicit target
// it runs the normal update check; with one it trusts the caller except for
// reinstalling the running version, which is a no-op.
func (c *Checker) resolveTag(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (string, error) {
	if input.TargetVersion == "" {
		progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
		result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return "", fmt.Errorf("check for updates: %w", err)
		}
		if !result.UpdateAvailable {
			return "", ErrAlreadyLatest
		}
		return result.LatestVersion, nil
	}
	if canonicalVersion(input.TargetVersion) == canonicalVersion(input.CurrentVersion) {
		return "", ErrAlreadyLatest
	}
	return input.TargetVersion, nil
}

// platformAsset builds the download locations for this platform's artifact
// in the given release.
func (c *Checker) platformAsset(tag string) (releaseAsset, error) {
	name, err := assetFileName(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return releaseAsset{}, err
	}
	base := fmt.Sprintf("%s/%s/%s/releases/download/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)
	binary := "skimr"
	if strings.HasSuffix(name, ".zip") {
		binary = "skimr.exe"
	}
	return releaseAsset{
		tag:     tag,
		name:    name,
		url:     base + "/" + name,
		sumsURL: base + "/checksums.txt",
		binary:  binary,
	}, nil
}

// releaseArch maps GOARCH values onto the architecture labels the release
// pipeline uses in artifact names.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// assetFileName returns the release artifact name for a platform. Darwin
// ships a universal binary; Windows ships zip instead of tar.gz.
func assetFileName(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return "skimr_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return "skimr_Linux_" + arch + ".tar.gz", nil
	case "windows":
		return "skimr_Windows_" + arch + ".zip", nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// publishedDigest fetches the release's checksums.txt and returns the hex
// sha256 recorded for the asset. The file is one "<hex>  <name>" line per
// artifact.
func (c *Checker) publishedDigest(ctx context.Context, asset releaseAsset) (string, error) {
	body, err := c.get(ctx, asset.sumsURL)
	if err != nil {
		return "", fmt.Errorf("download checksums: %w", err)
	}
	defer func() { _ = body.Close() }()

	sc := bufio.NewScanner(body)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == asset.name {
			return fields[0], nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read checksums: %w", err)
	}
	return "", fmt.Errorf("no checksum found for %s in checksums.txt", asset.name)
}

// fetchToFile streams a URL into dst and returns the hex sha256 of exactly
// the bytes written, so verification covers what landed on disk.
func (c *Checker) fetchToFile(ctx context.Context, url, dst string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(f, h), body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Checker) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// extractBinaryTo copies the named binary out of the archive into dst with
// the given mode. The mode is set before the caller renames dst into
// place, so the installed file never exists without its permissions.
func extractBinaryTo(dst, archivePath, name string, mode os.FileMode) error {
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	if strings.HasSuffix(archivePath, ".zip") {
		err = copyFromZip(f, archivePath, name)
	} else {
		err = copyFromTarGz(f, archivePath, name)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Chmod(dst, mode.Perm())
}

func copyFromTarGz(w io.Writer, archivePath, name string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			_, err = io.Copy(w, tr)
			return err
		}
	}
	return fmt.Errorf("binary %q not found in archive", name)
}

func copyFromZip(w io.Writer, archivePath, name string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, zf := range zr.File {
		if filepath.Base(zf.Name) != name {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		_, err = io.Copy(w, rc)
		_ = rc.Close()
		return err
	}
	return fmt.Errorf("binary %q not found in archive", name)
}
