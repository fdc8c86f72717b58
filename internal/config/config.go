package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration. It is loaded once at startup
// and threaded as an immutable value into every component that needs it; no
// component re-reads ambient state mid-call.
type Config struct {
	LogLevel string

	// ScriptTimeout bounds one osascript round trip. HierarchyTimeout is the
	// extended deadline for full-account mailbox scans, which take far longer
	// on large accounts.
	ScriptTimeout    time.Duration
	HierarchyTimeout time.Duration

	// SearchLimit is the default result cap when a tool call omits one.
	SearchLimit int

	Search SearchScope

	// DisabledAccounts are account names to skip even when Mail.app reports
	// them as enabled.
	DisabledAccounts []string

	// UnreadSampleThreshold and UnreadSampleSize control unread-count
	// estimation: mailboxes with more messages than the threshold have only
	// the newest UnreadSampleSize messages checked for read status, and the
	// unread count is extrapolated linearly.
	UnreadSampleThreshold int
	UnreadSampleSize      int
}

// SearchScope bounds how much of the mail store a search or bulk operation
// may scan, trading completeness for latency.
type SearchScope struct {
	// AccountLimit caps how many accounts a priority-scoped search visits.
	AccountLimit int

	// MailboxScanLimit caps how many mailboxes are scanned per account.
	MailboxScanLimit int

	// MessagesPerMailbox caps how many messages are scanned per mailbox,
	// newest first.
	MessagesPerMailbox int

	// PriorityNames classifies mailboxes for priority-scoped search by
	// case-insensitive name match (exact or substring).
	PriorityNames []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ScriptTimeout:    time.Duration(getEnvInt("OSASCRIPT_TIMEOUT_MS", 30000)) * time.Millisecond,
		HierarchyTimeout: time.Duration(getEnvInt("HIERARCHY_TIMEOUT_MS", 120000)) * time.Millisecond,
		SearchLimit:      getEnvInt("SEARCH_LIMIT", 20),
		Search: SearchScope{
			AccountLimit:       getEnvInt("ACCOUNT_LIMIT", 5),
			MailboxScanLimit:   getEnvInt("MAILBOX_SCAN_LIMIT", 20),
			MessagesPerMailbox: getEnvInt("MESSAGES_PER_MAILBOX", 50),
			PriorityNames:      getEnvList("PRIORITY_MAILBOXES", []string{"INBOX", "Sent"}),
		},
		DisabledAccounts:      getEnvList("DISABLED_ACCOUNTS", nil),
		UnreadSampleThreshold: getEnvInt("UNREAD_SAMPLE_THRESHOLD", 500),
		UnreadSampleSize:      getEnvInt("UNREAD_SAMPLE_SIZE", 100),
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ScriptTimeout <= 0 {
		return fmt.Errorf("OSASCRIPT_TIMEOUT_MS must be positive")
	}
	if c.HierarchyTimeout <= 0 {
		return fmt.Errorf("HIERARCHY_TIMEOUT_MS must be positive")
	}
	if c.SearchLimit < 1 || c.SearchLimit > 1000 {
		return fmt.Errorf("SEARCH_LIMIT must be between 1 and 1000")
	}
	if c.Search.AccountLimit < 1 {
		return fmt.Errorf("ACCOUNT_LIMIT must be at least 1")
	}
	if c.Search.MailboxScanLimit < 1 {
		return fmt.Errorf("MAILBOX_SCAN_LIMIT must be at least 1")
	}
	if c.Search.MessagesPerMailbox < 1 {
		return fmt.Errorf("MESSAGES_PER_MAILBOX must be at least 1")
	}
	if len(c.Search.PriorityNames) == 0 {
		return fmt.Errorf("PRIORITY_MAILBOXES must list at least one mailbox name")
	}
	if c.UnreadSampleThreshold < 1 {
		return fmt.Errorf("UNREAD_SAMPLE_THRESHOLD must be at least 1")
	}
	if c.UnreadSampleSize < 1 {
		return fmt.Errorf("UNREAD_SAMPLE_SIZE must be at least 1")
	}
	return nil
}

// AccountDisabled reports whether an account name is excluded by
// configuration.
func (c *Config) AccountDisabled(name string) bool {
	for _, disabled := range c.DisabledAccounts {
		if strings.EqualFold(disabled, name) {
			return true
		}
	}
	return false
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable as a trimmed list
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
