package github

// Profile is a GitHub user or organization as returned by /users/{login}.
type Profile struct {
	Login        string `json:"login"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatar_url"`
	Type         string `json:"type"` // "User" or "Organization"
	HTMLURL      string `json:"html_url"`
	Bio          string `json:"bio"`
	Location     string `json:"location"`
	Company      string `json:"company"`
	Blog         string `json:"blog"`
	Twitter      string `json:"twitter_username"`
	PublicRepos  int    `json:"public_repos"`
	Followers    int    `json:"followers"`
	Following    int    `json:"following"`
	ReposURL     string `json:"repos_url"`
	FollowersURL string `json:"followers_url"`
	FollowingURL string `json:"following_url"`
}

// Avatar shapes used by the renderers.
const (
	AvatarCircle  = "circle"
	AvatarRounded = "rounded"
)

// IsOrganization reports whether the profile belongs to an organization.
func (p *Profile) IsOrganization() bool { return p.Type == "Organization" }

// AvatarShape is circle for users and rounded for organizations.
func (p *Profile) AvatarShape() string {
	if p.IsOrganization() {
		return AvatarRounded
	}
	return AvatarCircle
}

// DisplayName returns the name, falling back to the login.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// Repository is one entry of /users/{login}/repos.
type Repository struct {
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`
	Description *string `json:"description"`
	Private     bool    `json:"private"`
	Language    *string `json:"language"`
	Stars       int     `json:"stargazers_count"`
	Forks       int     `json:"forks_count"`
	Fork        bool    `json:"fork"`
}

// Visibility returns "Private" or "Public".
func (r Repository) Visibility() string {
	if r.Private {
		return "Private"
	}
	return "Public"
}

// DescriptionText returns the description or "".
func (r Repository) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// LanguageText returns the primary language or "".
func (r Repository) LanguageText() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

// Forked returns the fork-flagged subset of repos, preserving order.
func Forked(repos []Repository) []Repository {
	var out []Repository
	for _, r := range repos {
		if r.Fork {
			out = append(out, r)
		}
	}
	return out
}

// Person is an entry of a followers or following list.
type Person struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	URL       string `json:"url"` // API URL of the person's profile
	HTMLURL   string `json:"html_url"`
}
