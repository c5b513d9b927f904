package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

const timeout = 10 * time.Second

// API is the read-only hosting surface needed to resolve tags. Every
// lookup reports a missing value instead of an error: a failed call is
// final for this run and the caller leaves the reference alone.
type API interface {
	// TagSHA resolves a tag to its commit hash.
	TagSHA(repo, tag string) (string, bool)
	// Tags lists all tag names of the repository.
	Tags(repo string) ([]string, bool)
	// Releases lists the tag names of all releases.
	Releases(repo string) ([]string, bool)
	// LatestReleaseTag returns the tag name of the latest release.
	LatestReleaseTag(repo string) (string, bool)
}

// Client fetches tag and release data from the GitHub REST API.
type Client struct {
	ctx    context.Context
	github *github.Client
}

// Ensure Client implements API
var _ API = (*Client)(nil)

// NewClient creates a Client. An empty token issues unauthenticated
// requests, which is accepted and only subject to stricter rate limits.
// A non-empty baseURL selects a GitHub Enterprise-style API endpoint.
func NewClient(ctx context.Context, baseURL, token string) (*Client, error) {
	base := &http.Client{
		Timeout:   timeout,
		Transport: newTraceTransport(),
	}

	httpClient := base
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
		httpClient.Timeout = timeout
		slog.Debug("using token authentication")
	} else {
		slog.Debug("no token found, proceeding without authentication")
	}

	gh := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
		}
	}

	return &Client{ctx: ctx, github: gh}, nil
}

// TagSHA resolves a tag reference to its commit hash.
func (c *Client) TagSHA(repo, tag string) (string, bool) {
	owner, name, ok := splitRepo(repo)
	if !ok {
		return "", false
	}

	ref, _, err := c.github.Git.GetRef(c.ctx, owner, name, "tags/"+tag)
	if err != nil {
		logAPIError("error fetching tag reference", repo, err)
		return "", false
	}

	sha := ref.GetObject().GetSHA()
	if sha == "" {
		slog.Error("tag reference has no commit hash", "repo", repo, "tag", tag)
		return "", false
	}

	slog.Debug("found commit hash", "repo", repo, "tag", tag, "sha", sha)
	return sha, true
}

// Tags lists all tag names of the repository, following pagination.
func (c *Client) Tags(repo string) ([]string, bool) {
	owner, name, ok := splitRepo(repo)
	if !ok {
		return nil, false
	}

	var tags []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := c.github.Repositories.ListTags(c.ctx, owner, name, opts)
		if err != nil {
			logAPIError("error fetching tags", repo, err)
			return nil, false
		}

		for _, tag := range page {
			tags = append(tags, tag.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return tags, true
}

// Releases lists the tag names of all releases, following pagination.
func (c *Client) Releases(repo string) ([]string, bool) {
	owner, name, ok := splitRepo(repo)
	if !ok {
		return nil, false
	}

	var tags []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := c.github.Repositories.ListReleases(c.ctx, owner, name, opts)
		if err != nil {
			logAPIError("error fetching releases", repo, err)
			return nil, false
		}

		for _, release := range page {
			tags = append(tags, release.GetTagName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return tags, true
}

// LatestReleaseTag returns the tag name of the latest release.
func (c *Client) LatestReleaseTag(repo string) (string, bool) {
	owner, name, ok := splitRepo(repo)
	if !ok {
		return "", false
	}

	release, _, err := c.github.Repositories.GetLatestRelease(c.ctx, owner, name)
	if err != nil {
		logAPIError("error fetching latest release", repo, err)
		return "", false
	}
	if release.GetTagName() == "" {
		slog.Error("latest release has no tag name", "repo", repo)
		return "", false
	}

	return release.GetTagName(), true
}

// splitRepo splits an owner/repo reference into its parts.
func splitRepo(repo string) (string, string, bool) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		slog.Error("invalid repository reference", "repo", repo)
		return "", "", false
	}
	return owner, name, true
}

// logAPIError logs a failed API call, including the response status code
// when the error carries one.
func logAPIError(msg, repo string, err error) {
	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		slog.Error(msg, "repo", repo, "status", apiErr.Response.StatusCode, "error", err)
		return
	}
	slog.Error(msg, "repo", repo, "error", err)
}
