// Package httputil provides HTTP utilities for the GitHub API client.
//
// # Retry
//
// [Retry] wraps an operation with automatic retry for transient failures.
// Only errors wrapped in [RetryableError] are retried; everything else
// (404s, decode failures, rate limits) is returned on the first attempt.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch()
//	})
//
// # Configuration
//
// [Policy] carries the attempt count and initial delay. The zero value
// makes exactly one attempt, which is what octoview uses unless
// github.retry_attempts is raised in the config file.
package httputil
