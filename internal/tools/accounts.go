package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
)

// GetAccountsTool lists Mail.app accounts
type GetAccountsTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewGetAccountsTool creates a new get accounts tool
func NewGetAccountsTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *GetAccountsTool {
	return &GetAccountsTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *GetAccountsTool) Name() string {
	return "get_accounts"
}

// Description returns the tool description
func (t *GetAccountsTool) Description() string {
	return "List all Mail accounts with their email addresses and enabled state"
}

// InputSchema returns the JSON schema for tool inputs
func (t *GetAccountsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// Execute executes the tool
func (t *GetAccountsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	accounts, err := t.mail.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
