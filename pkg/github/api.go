package github

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// PageQuery selects one page of a user's repositories.
type PageQuery struct {
	Page    int // 1-based
	PerPage int
}

// UserURL returns the API URL of a user or organization.
func (c *Client) UserURL(login string) string {
	return c.baseURL + "/users/" + url.PathEscape(login)
}

// User fetches the profile at url.
func (c *Client) User(ctx context.Context, url string) (*Profile, error) {
	var p Profile
	if err := c.cached(ctx, "user", url, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Repositories fetches one page of repositories from reposURL, newest first.
func (c *Client) Repositories(ctx context.Context, reposURL string, q PageQuery) ([]Repository, error) {
	var repos []Repository
	if err := c.cached(ctx, "repos", ReposPageURL(reposURL, q), &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// People fetches a followers or following list. Only the API's default
// first page is requested.
func (c *Client) People(ctx context.Context, url string) ([]Person, error) {
	var people []Person
	if err := c.cached(ctx, "people", StripURLTemplate(url), &people); err != nil {
		return nil, err
	}
	return people, nil
}

// ReposPageURL appends the sort and paging parameters to reposURL:
// {reposURL}?sort=created&per_page=N&page=P.
func ReposPageURL(reposURL string, q PageQuery) string {
	sep := "?"
	if strings.Contains(reposURL, "?") {
		sep = "&"
	}
	return reposURL + sep + "sort=created&per_page=" + strconv.Itoa(q.PerPage) + "&page=" + strconv.Itoa(q.Page)
}

// StripURLTemplate removes an RFC 6570 template suffix such as
// "{/other_user}" from a hypermedia URL.
func StripURLTemplate(u string) string {
	if i := strings.IndexByte(u, '{'); i >= 0 {
		return u[:i]
	}
	return u
}
