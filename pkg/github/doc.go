// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// This package fetches the resources a profile view needs from
// https://api.github.com: the user or organization itself, one page of
// its repositories, and its followers and following lists.
//
// # Usage
//
//	client := github.NewClient(github.Options{Token: token})
//
//	p, err := client.User(ctx, client.UserURL("google"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	repos, err := client.Repositories(ctx, p.ReposURL, github.PageQuery{Page: 1, PerPage: 10})
//
// [Client.Fetch] is the generic primitive behind the typed helpers: it
// GETs an absolute URL and JSON-decodes a 2xx body.
//
// # Errors
//
// Failures carry a code from pkg/errors and wrap one of the sentinels
// [ErrNotFound], [ErrRateLimited] or [ErrNetwork], so both
// errors.Is(err, github.ErrNotFound) and apperr.GetCode(err) work.
//
// # Authentication
//
// A token is optional. Without one, GitHub allows 60 requests/hour.
// [ResolveToken] finds one in configuration, GITHUB_TOKEN, or the gh CLI.
//
// # Caching and retries
//
// Both are off by default. Pass a [cache.Cache] and an [httputil.Policy]
// in [Options] to enable them. Cache keys for authenticated clients are
// scoped by a hash of the token.
package github
