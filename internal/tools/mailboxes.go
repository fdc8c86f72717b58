package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
)

// GetMailboxesTool returns the mailbox hierarchy for one account
type GetMailboxesTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewGetMailboxesTool creates a new get mailboxes tool
func NewGetMailboxesTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *GetMailboxesTool {
	return &GetMailboxesTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *GetMailboxesTool) Name() string {
	return "get_mailboxes"
}

// Description returns the tool description
func (t *GetMailboxesTool) Description() string {
	return "Get the full mailbox hierarchy for an account, with message and unread counts. Unread counts on very large mailboxes are estimates. Slow on large accounts."
}

// InputSchema returns the JSON schema for tool inputs
func (t *GetMailboxesTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": map[string]interface{}{
				"type":        "string",
				"description": "Account whose mailboxes to list",
			},
		},
		"required": []string{"account_name"},
	}
}

// Execute executes the tool
func (t *GetMailboxesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	accountName := stringParam(params, "account_name")
	if accountName == "" {
		return nil, fmt.Errorf("account_name is required")
	}
	hierarchy, err := t.mail.MailboxHierarchy(ctx, accountName)
	if err != nil {
		return nil, fmt.Errorf("failed to get mailboxes: %w", err)
	}
	return hierarchy, nil
}
