package config

// GitHubConfig holds GitHub API configuration.
type GitHubConfig struct {
	// Token is the personal access token used for both GraphQL and REST calls.
	Token string
	// Org is the GitHub organization whose activity is analyzed.
	Org string
	// GraphQLURL is the GraphQL API endpoint.
	GraphQLURL string
	// RESTBaseURL is the REST API base URL (Copilot seat endpoints).
	RESTBaseURL string
}

// LoadGitHubConfigFromEnv loads GitHub configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	return GitHubConfig{
		Token:       GetEnv("GITHUB_TOKEN", ""),
		Org:         GetEnv("GITHUB_ORG", ""),
		GraphQLURL:  GetEnv("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql"),
		RESTBaseURL: GetEnv("GITHUB_API_URL", "https://api.github.com"),
	}
}

// Validate validates GitHub configuration.
func (c GitHubConfig) Validate() []ValidationError {
	var errs []ValidationError
	if c.Token == "" {
		errs = append(errs, ValidationError{
			Variable: "GITHUB_TOKEN",
			Message:  "personal access token is required, create one at https://github.com/settings/tokens",
		})
	}
	if c.Org == "" {
		errs = append(errs, ValidationError{
			Variable: "GITHUB_ORG",
			Message:  "organization name is required",
		})
	}
	return errs
}
