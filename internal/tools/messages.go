package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
)

// GetUnreadMailsTool lists unread messages across all accounts
type GetUnreadMailsTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewGetUnreadMailsTool creates a new get unread mails tool
func NewGetUnreadMailsTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *GetUnreadMailsTool {
	return &GetUnreadMailsTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *GetUnreadMailsTool) Name() string {
	return "get_unread_mails"
}

// Description returns the tool description
func (t *GetUnreadMailsTool) Description() string {
	return "List unread messages from every account's inbox, newest first, with a content preview"
}

// InputSchema returns the JSON schema for tool inputs
func (t *GetUnreadMailsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Optional: Result limit (default: %d)", t.config.SearchLimit),
				"minimum":     1,
			},
		},
	}
}

// Execute executes the tool
func (t *GetUnreadMailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	messages, err := t.mail.UnreadMails(ctx, intParam(params, "limit"))
	if err != nil {
		return nil, fmt.Errorf("failed to get unread mails: %w", err)
	}
	return messages, nil
}

// GetLatestMailsTool lists the newest messages in one account
type GetLatestMailsTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewGetLatestMailsTool creates a new get latest mails tool
func NewGetLatestMailsTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *GetLatestMailsTool {
	return &GetLatestMailsTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *GetLatestMailsTool) Name() string {
	return "get_latest_mails"
}

// Description returns the tool description
func (t *GetLatestMailsTool) Description() string {
	return "List the most recent messages in an account's inbox mailboxes, newest first"
}

// InputSchema returns the JSON schema for tool inputs
func (t *GetLatestMailsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": map[string]interface{}{
				"type":        "string",
				"description": "Account to read from",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Optional: Result limit (default: %d)", t.config.SearchLimit),
				"minimum":     1,
			},
		},
		"required": []string{"account_name"},
	}
}

// Execute executes the tool
func (t *GetLatestMailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	accountName := stringParam(params, "account_name")
	if accountName == "" {
		return nil, fmt.Errorf("account_name is required")
	}
	messages, err := t.mail.LatestMails(ctx, accountName, intParam(params, "limit"))
	if err != nil {
		return nil, fmt.Errorf("failed to get latest mails: %w", err)
	}
	return messages, nil
}
