package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
)

// SearchMailsTool searches priority mailboxes across accounts
type SearchMailsTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewSearchMailsTool creates a new search mails tool
func NewSearchMailsTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *SearchMailsTool {
	return &SearchMailsTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *SearchMailsTool) Name() string {
	return "search_mails"
}

// Description returns the tool description
func (t *SearchMailsTool) Description() string {
	return "Search subject and sender across priority mailboxes (inbox/sent) of your accounts. Fast but bounded; content is omitted."
}

// InputSchema returns the JSON schema for tool inputs
func (t *SearchMailsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"term": map[string]interface{}{
				"type":        "string",
				"description": "Search term (case-insensitive substring match)",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Optional: Result limit (default: %d)", t.config.SearchLimit),
				"minimum":     1,
			},
		},
		"required": []string{"term"},
	}
}

// Execute executes the tool
func (t *SearchMailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	term := stringParam(params, "term")
	if term == "" {
		return nil, fmt.Errorf("term is required")
	}
	messages, err := t.mail.SearchMails(ctx, term, intParam(params, "limit"))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return messages, nil
}

// SearchInboxTool searches every account's inbox
type SearchInboxTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewSearchInboxTool creates a new search inbox tool
func NewSearchInboxTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *SearchInboxTool {
	return &SearchInboxTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *SearchInboxTool) Name() string {
	return "search_inbox"
}

// Description returns the tool description
func (t *SearchInboxTool) Description() string {
	return "Search subject and sender in the inbox of every account; results include a content preview"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SearchInboxTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"term": map[string]interface{}{
				"type":        "string",
				"description": "Search term (case-insensitive substring match)",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Optional: Result limit (default: %d)", t.config.SearchLimit),
				"minimum":     1,
			},
		},
		"required": []string{"term"},
	}
}

// Execute executes the tool
func (t *SearchInboxTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	term := stringParam(params, "term")
	if term == "" {
		return nil, fmt.Errorf("term is required")
	}
	messages, err := t.mail.SearchInbox(ctx, term, intParam(params, "limit"))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return messages, nil
}

// SearchInMailboxTool searches one named mailbox
type SearchInMailboxTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewSearchInMailboxTool creates a new search in mailbox tool
func NewSearchInMailboxTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *SearchInMailboxTool {
	return &SearchInMailboxTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *SearchInMailboxTool) Name() string {
	return "search_in_mailbox"
}

// Description returns the tool description
func (t *SearchInMailboxTool) Description() string {
	return "Search subject and sender in one named mailbox, optionally within one account"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SearchInMailboxTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"term": map[string]interface{}{
				"type":        "string",
				"description": "Search term (case-insensitive substring match)",
			},
			"mailbox": map[string]interface{}{
				"type":        "string",
				"description": "Mailbox name to search",
			},
			"account_name": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Account owning the mailbox; first match across accounts if omitted",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Optional: Result limit (default: %d)", t.config.SearchLimit),
				"minimum":     1,
			},
		},
		"required": []string{"term", "mailbox"},
	}
}

// Execute executes the tool
func (t *SearchInMailboxTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	term := stringParam(params, "term")
	if term == "" {
		return nil, fmt.Errorf("term is required")
	}
	mailbox := stringParam(params, "mailbox")
	if mailbox == "" {
		return nil, fmt.Errorf("mailbox is required")
	}
	messages, err := t.mail.SearchInMailbox(ctx, term, mailbox, stringParam(params, "account_name"), intParam(params, "limit"))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return messages, nil
}
