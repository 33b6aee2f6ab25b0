package state

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"verse_channel_bot/internal/domain/cursor"
)

// GitHubConfig points at a file in a repository.
type GitHubConfig struct {
	APIURL     string // e.g. https://api.github.com
	Repository string // owner/name
	Token      string
	Path       string // file path inside the repository
	Ref        string // optional branch, tag or sha
	Timeout    time.Duration
}

// GitHubFetcher reads the state document through the repository contents API.
// It never writes.
type GitHubFetcher struct {
	cfg        GitHubConfig
	logger     logrus.FieldLogger
	httpClient *http.Client
}

var _ cursor.Fetcher = (*GitHubFetcher)(nil)

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

func NewGitHubFetcher(cfg GitHubConfig, logger logrus.FieldLogger) *GitHubFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GitHubFetcher{
		cfg:        cfg,
		logger:     logger.WithField("component", "github_state"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch returns cursor.ErrUnavailable without any request when the token or
// repository is not configured, and cursor.ErrNotFound on 404.
func (g *GitHubFetcher) Fetch(ctx context.Context) (cursor.State, error) {
	if g.cfg.Token == "" || g.cfg.Repository == "" {
		return cursor.State{}, fmt.Errorf("%w: github token or repository not set", cursor.ErrUnavailable)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s",
		strings.TrimRight(g.cfg.APIURL, "/"), g.cfg.Repository, strings.TrimLeft(g.cfg.Path, "/"))
	if g.cfg.Ref != "" {
		endpoint += "?ref=" + url.QueryEscape(g.cfg.Ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return cursor.State{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	g.logger.WithField("url", endpoint).Debug("Fetching state from GitHub")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return cursor.State{}, fmt.Errorf("fetch state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return cursor.State{}, cursor.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return cursor.State{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cursor.State{}, fmt.Errorf("read response: %w", err)
	}

	var contents contentsResponse
	if err := json.Unmarshal(body, &contents); err != nil {
		return cursor.State{}, fmt.Errorf("parse JSON: %w", err)
	}
	if contents.Encoding != "" && contents.Encoding != "base64" {
		return cursor.State{}, fmt.Errorf("unsupported content encoding %q", contents.Encoding)
	}

	// The API wraps base64 content at 60 columns.
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(contents.Content)
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return cursor.State{}, fmt.Errorf("decode content: %w", err)
	}

	return decodeDocument(decoded)
}
