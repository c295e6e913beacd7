package github

import (
	"regexp"

	apperr "github.com/matzehuels/octoview/pkg/errors"
)

// GitHub logins: 1-39 alphanumeric or hyphen, not starting with hyphen.
var validLogin = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)

// ValidateLogin validates a GitHub username or organization name.
func ValidateLogin(login string) error {
	if login == "" {
		return apperr.New(apperr.ErrCodeInvalidUsername, "username is required")
	}
	if !validLogin.MatchString(login) {
		return apperr.New(apperr.ErrCodeInvalidUsername, "invalid username %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", login)
	}
	return nil
}
