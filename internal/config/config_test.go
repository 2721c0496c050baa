package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv applies env for the duration of the test. Keys mapped to nil are unset.
func setEnv(t *testing.T, env map[string]*string) {
	t.Helper()
	for _, name := range RequiredVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	for _, opt := range OptionalVars {
		t.Setenv(opt.Name, "")
		os.Unsetenv(opt.Name)
	}
	for k, v := range env {
		if v == nil {
			continue
		}
		t.Setenv(k, *v)
	}
}

func ptr(s string) *string { return &s }

func validEnv() map[string]*string {
	return map[string]*string{
		"GITHUB_USERNAME":     ptr("octocat"),
		"GITHUB_TOKEN":        ptr("ghp_test"),
		"DISCORD_WEBHOOK_URL": ptr("https://discord.example/webhook"),
		"DISCORD_USER_ID":     ptr("123456"),
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, validEnv())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, &Config{
		GitHubUsername:    "octocat",
		GitHubToken:       "ghp_test",
		GitHubGraphQLURL:  DefaultGraphQLURL,
		DiscordWebhookURL: "https://discord.example/webhook",
		DiscordUserID:     "123456",
		EnableGrassCheck:  true,
		EnableDailyStreak: true,
		LogLevel:          "info",
	}, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	env := validEnv()
	env["ENABLE_GRASS_CHECK"] = ptr("no")
	env["ENABLE_DAILY_STREAK"] = ptr("YES")
	env["LOG_LEVEL"] = ptr("DEBUG")
	env["GITHUB_GRAPHQL_URL"] = ptr("https://ghe.example/api/graphql")
	setEnv(t, env)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.EnableGrassCheck)
	assert.True(t, cfg.EnableDailyStreak)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://ghe.example/api/graphql", cfg.GitHubGraphQLURL)
}

func TestLoad_EmptyToggleDisables(t *testing.T) {
	env := validEnv()
	env["ENABLE_DAILY_STREAK"] = ptr("")
	setEnv(t, env)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.EnableGrassCheck)
	assert.False(t, cfg.EnableDailyStreak)
}

func TestLoad_MissingRequired(t *testing.T) {
	testCases := []struct {
		name     string
		modify   func(env map[string]*string)
		expected []string
	}{
		{
			name:     "username unset",
			modify:   func(env map[string]*string) { env["GITHUB_USERNAME"] = nil },
			expected: []string{"GITHUB_USERNAME"},
		},
		{
			name:     "token empty",
			modify:   func(env map[string]*string) { env["GITHUB_TOKEN"] = ptr("") },
			expected: []string{"GITHUB_TOKEN"},
		},
		{
			name: "webhook and user id unset",
			modify: func(env map[string]*string) {
				env["DISCORD_WEBHOOK_URL"] = nil
				env["DISCORD_USER_ID"] = nil
			},
			expected: []string{"DISCORD_WEBHOOK_URL", "DISCORD_USER_ID"},
		},
		{
			name: "everything unset",
			modify: func(env map[string]*string) {
				for k := range env {
					env[k] = nil
				}
			},
			expected: RequiredVars,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := validEnv()
			tc.modify(env)
			setEnv(t, env)

			cfg, err := Load()
			assert.Nil(t, cfg)

			var missingErr *MissingEnvError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tc.expected, missingErr.Vars)
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "True", "1", "yes", "Yes"} {
		assert.True(t, ParseBool(s), s)
	}
	for _, s := range []string{"", "false", "0", "no", "on", "t", " true"} {
		assert.False(t, ParseBool(s), s)
	}
}

func TestUsage(t *testing.T) {
	usage := Usage()
	for _, name := range RequiredVars {
		assert.Contains(t, usage, "  - "+name+"\n")
	}
	assert.Contains(t, usage, "  - ENABLE_GRASS_CHECK (default: true)")
	assert.Contains(t, usage, "  - ENABLE_DAILY_STREAK (default: true)")
}
