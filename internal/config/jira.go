package config

// JiraConfig holds Jira API configuration. Jira is optional: when Domain is
// empty the tracker integration is disabled and tracker metrics are omitted.
type JiraConfig struct {
	// Domain is the Jira Cloud domain (e.g. "example.atlassian.net").
	Domain string
	// Email is the account email used for basic auth.
	Email string
	// APIToken is the Jira API token paired with Email.
	APIToken string
	// ProjectKey scopes JQL queries to a single project.
	ProjectKey string
	// BoardID is the agile board used for sprint metrics.
	BoardID int
}

// LoadJiraConfigFromEnv loads Jira configuration from environment variables.
func LoadJiraConfigFromEnv() JiraConfig {
	return JiraConfig{
		Domain:     GetEnv("JIRA_DOMAIN", ""),
		Email:      GetEnv("JIRA_EMAIL", ""),
		APIToken:   GetEnv("JIRA_API_TOKEN", ""),
		ProjectKey: GetEnv("JIRA_PROJECT_KEY", ""),
		BoardID:    GetEnvInt("JIRA_BOARD_ID", 0),
	}
}

// Enabled reports whether the Jira integration is configured.
func (c JiraConfig) Enabled() bool {
	return c.Domain != ""
}

// Validate validates Jira configuration. An unconfigured integration is valid;
// a partially configured one is not.
func (c JiraConfig) Validate() []ValidationError {
	if !c.Enabled() {
		return nil
	}

	var errs []ValidationError
	if c.Email == "" {
		errs = append(errs, ValidationError{
			Variable: "JIRA_EMAIL",
			Message:  "account email is required when JIRA_DOMAIN is set",
		})
	}
	if c.APIToken == "" {
		errs = append(errs, ValidationError{
			Variable: "JIRA_API_TOKEN",
			Message:  "API token is required when JIRA_DOMAIN is set",
		})
	}
	if c.ProjectKey == "" {
		errs = append(errs, ValidationError{
			Variable: "JIRA_PROJECT_KEY",
			Message:  "project key is required when JIRA_DOMAIN is set",
		})
	}
	if c.BoardID <= 0 {
		errs = append(errs, ValidationError{
			Variable: "JIRA_BOARD_ID",
			Message:  "agile board id must be a positive integer",
		})
	}
	return errs
}
