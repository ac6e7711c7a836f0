// Package update checks whether a newer release is published.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// DefaultReleaseURL serves the latest release document.
const DefaultReleaseURL = "https://api.github.com/repos/OpenInterpreter/open-interpreter/releases/latest"

const defaultTimeout = 3 * time.Second

// Checker compares the running version with the latest release.
type Checker struct {
	Current    string
	ReleaseURL string
	HTTPClient *http.Client
}

// NewChecker returns a checker for the running version.
func NewChecker(current string) *Checker {
	return &Checker{
		Current:    current,
		ReleaseURL: DefaultReleaseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type release struct {
	TagName string `json:"tag_name"`
}

// Check reports whether the latest release is newer than Current.
func (c *Checker) Check(ctx context.Context) (bool, error) {
	current := canonical(c.Current)
	if current == "" {
		return false, fmt.Errorf("invalid current version %q", c.Current)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ReleaseURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetch release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetch release: %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rel); err != nil {
		return false, fmt.Errorf("decode release: %w", err)
	}
	latest := canonical(rel.TagName)
	if latest == "" {
		return false, fmt.Errorf("invalid release tag %q", rel.TagName)
	}
	return semver.Compare(latest, current) > 0, nil
}

// canonical normalises "0.2.0", "v0.2" and "v0.2.0" to semver form, or ""
// when the string is not a version.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
