package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.ScriptTimeout)
	assert.Equal(t, 120*time.Second, cfg.HierarchyTimeout)
	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, 5, cfg.Search.AccountLimit)
	assert.Equal(t, 50, cfg.Search.MessagesPerMailbox)
	assert.Equal(t, []string{"INBOX", "Sent"}, cfg.Search.PriorityNames)
	assert.Empty(t, cfg.DisabledAccounts)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("OSASCRIPT_TIMEOUT_MS", "5000")
	t.Setenv("SEARCH_LIMIT", "7")
	t.Setenv("PRIORITY_MAILBOXES", "INBOX, Important ,Sent Messages")
	t.Setenv("DISABLED_ACCOUNTS", "Old Account")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.ScriptTimeout)
	assert.Equal(t, 7, cfg.SearchLimit)
	assert.Equal(t, []string{"INBOX", "Important", "Sent Messages"}, cfg.Search.PriorityNames)
	assert.Equal(t, []string{"Old Account"}, cfg.DisabledAccounts)
}

func TestLoadConfigIgnoresUnparsableInt(t *testing.T) {
	t.Setenv("SEARCH_LIMIT", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.SearchLimit)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.ScriptTimeout = 0 }},
		{"zero hierarchy timeout", func(c *Config) { c.HierarchyTimeout = 0 }},
		{"search limit too large", func(c *Config) { c.SearchLimit = 2000 }},
		{"zero account limit", func(c *Config) { c.Search.AccountLimit = 0 }},
		{"zero mailbox scan limit", func(c *Config) { c.Search.MailboxScanLimit = 0 }},
		{"zero messages per mailbox", func(c *Config) { c.Search.MessagesPerMailbox = 0 }},
		{"empty priority names", func(c *Config) { c.Search.PriorityNames = nil }},
		{"zero sample threshold", func(c *Config) { c.UnreadSampleThreshold = 0 }},
		{"zero sample size", func(c *Config) { c.UnreadSampleSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAccountDisabled(t *testing.T) {
	cfg := &Config{DisabledAccounts: []string{"Old Account"}}

	assert.True(t, cfg.AccountDisabled("old account"))
	assert.False(t, cfg.AccountDisabled("Work"))
}
