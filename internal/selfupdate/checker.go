// Package selfupdate checks GitHub releases for newer versions and
// replaces the running binary in place.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultAPIBaseURL      = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"

	repoOwner = "aidosq"
	repoName  = "sozdyq"
)

// Checker talks to GitHub releases for version checks and updates.
type Checker struct {
	owner           string
	repo            string
	baseURL         string
	downloadBaseURL string
	httpClient      *http.Client
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP client timeout. The default of 30s is
// fine for version checks but too short for downloading a release
// archive on a slow connection.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.httpClient.Timeout = d
	}
}

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) {
		c.baseURL = u
	}
}

// WithDownloadBaseURL overrides the release download base URL.
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) {
		c.downloadBaseURL = u
	}
}

// withExecPath overrides executable path resolution in tests.
func withExecPath(f func() (string, error)) Option {
	return func(c *Checker) {
		c.execPath = f
	}
}

// NewChecker creates a Checker for the sozdyq release repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:           repoOwner,
		repo:            repoName,
		baseURL:         defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput is the input for Check.
type CheckInput struct {
	// Version is the currently running version, e.g. "v1.2.0".
	Version string
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
}

type releaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check queries the latest GitHub release and compares it against the
// running version. Dev builds always report no update available.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	result := &CheckResult{CurrentVersion: input.Version}
	if input.Version == "(devel)" {
		return result, nil
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: status %d", resp.StatusCode)
	}

	var rel releaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release has no tag name")
	}

	result.LatestVersion = rel.TagName
	result.ReleaseURL = rel.HTMLURL
	result.UpdateAvailable = semver.IsValid(rel.TagName) &&
		semver.IsValid(input.Version) &&
		semver.Compare(rel.TagName, input.Version) > 0
	return result, nil
}

// downloadFile fetches a URL and returns the response body.
func (c *Checker) downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
