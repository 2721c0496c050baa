// Package config loads the reporter's settings from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultGraphQLURL is the public GitHub GraphQL endpoint.
const DefaultGraphQLURL = "https://api.github.com/graphql"

// Config holds all configuration for the application. It is loaded once per
// invocation and never mutated afterwards.
type Config struct {
	GitHubUsername    string
	GitHubToken       string
	GitHubGraphQLURL  string
	DiscordWebhookURL string
	DiscordUserID     string
	EnableGrassCheck  bool
	EnableDailyStreak bool
	LogLevel          string
}

// rawConfig mirrors the environment one-to-one before validation.
type rawConfig struct {
	GitHubUsername    string `mapstructure:"GITHUB_USERNAME"`
	GitHubToken       string `mapstructure:"GITHUB_TOKEN"`
	GitHubGraphQLURL  string `mapstructure:"GITHUB_GRAPHQL_URL"`
	DiscordWebhookURL string `mapstructure:"DISCORD_WEBHOOK_URL"`
	DiscordUserID     string `mapstructure:"DISCORD_USER_ID"`
	EnableGrassCheck  string `mapstructure:"ENABLE_GRASS_CHECK"`
	EnableDailyStreak string `mapstructure:"ENABLE_DAILY_STREAK"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
}

// RequiredVars lists the environment variables that must be set.
var RequiredVars = []string{
	"GITHUB_USERNAME",
	"GITHUB_TOKEN",
	"DISCORD_WEBHOOK_URL",
	"DISCORD_USER_ID",
}

// OptionalVars lists the optional environment variables with their defaults.
var OptionalVars = []struct {
	Name    string
	Default string
}{
	{"ENABLE_GRASS_CHECK", "true"},
	{"ENABLE_DAILY_STREAK", "true"},
	{"LOG_LEVEL", "info"},
	{"GITHUB_GRAPHQL_URL", DefaultGraphQLURL},
}

// MissingEnvError is returned when one or more required variables are unset or empty.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Vars, ", "))
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	// An explicitly empty toggle disables the feature instead of falling back to the default.
	v.AllowEmptyEnv(true)

	for _, name := range RequiredVars {
		if err := v.BindEnv(name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}
	for _, opt := range OptionalVars {
		if err := v.BindEnv(opt.Name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", opt.Name, err)
		}
		v.SetDefault(opt.Name, opt.Default)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	var missing []string
	for _, name := range RequiredVars {
		if v.GetString(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingEnvError{Vars: missing}
	}

	graphqlURL := raw.GitHubGraphQLURL
	if graphqlURL == "" {
		graphqlURL = DefaultGraphQLURL
	}

	return &Config{
		GitHubUsername:    raw.GitHubUsername,
		GitHubToken:       raw.GitHubToken,
		GitHubGraphQLURL:  graphqlURL,
		DiscordWebhookURL: raw.DiscordWebhookURL,
		DiscordUserID:     raw.DiscordUserID,
		EnableGrassCheck:  ParseBool(raw.EnableGrassCheck),
		EnableDailyStreak: ParseBool(raw.EnableDailyStreak),
		LogLevel:          strings.ToLower(raw.LogLevel),
	}, nil
}

// ParseBool reports whether s is one of "true", "1" or "yes", ignoring case.
// Every other value, including the empty string, is false.
func ParseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// Usage returns the enumerated list of required and optional variables.
func Usage() string {
	var b strings.Builder
	b.WriteString("Required environment variables:\n")
	for _, name := range RequiredVars {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	b.WriteString("\nOptional environment variables:\n")
	for _, opt := range OptionalVars {
		fmt.Fprintf(&b, "  - %s (default: %s)\n", opt.Name, opt.Default)
	}
	return b.String()
}
