package github

import (
	"net/url"
	"os"

	"github.com/cli/go-gh/pkg/auth"
)

// ResolveToken picks the token used for API requests. An explicit token
// wins, then GITHUB_TOKEN, then (when useGH is set) the credential stored
// by the gh CLI for the API host. source names where the token came from
// and is empty when requests will be anonymous.
func ResolveToken(explicit, baseURL string, useGH bool) (token, source string) {
	if explicit != "" {
		return explicit, "config"
	}
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t, "GITHUB_TOKEN"
	}
	if !useGH {
		return "", ""
	}
	return auth.TokenForHost(ghHost(baseURL))
}

// ghHost maps an API root to the host gh stores credentials under.
func ghHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" || u.Host == "api.github.com" {
		return "github.com"
	}
	return u.Host
}
