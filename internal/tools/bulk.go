package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
	"github.com/LionSR/mcp-apple/pkg/types"
)

// Bulk tools are keyed by protocol Message-IDs, not Mail.app's transient
// numeric ids; moves and re-fetches change the numeric id but the Message-ID
// stays stable.

func bulkResult(result types.OperationResult) map[string]interface{} {
	return map[string]interface{}{
		"succeeded_count": result.SucceededCount,
		"errors":          result.Errors,
	}
}

func messageIDsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Protocol Message-IDs of the target messages",
	}
}

func inboxOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Optional: Only scan inbox mailboxes (faster)",
	}
}

// MarkAsReadTool marks messages as read by Message-ID
type MarkAsReadTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewMarkAsReadTool creates a new mark as read tool
func NewMarkAsReadTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *MarkAsReadTool {
	return &MarkAsReadTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *MarkAsReadTool) Name() string {
	return "mark_as_read"
}

// Description returns the tool description
func (t *MarkAsReadTool) Description() string {
	return "Mark messages as read by Message-ID; reports how many succeeded and which could not be found"
}

// InputSchema returns the JSON schema for tool inputs
func (t *MarkAsReadTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message_ids": messageIDsSchema(),
			"inbox_only":  inboxOnlySchema(),
		},
		"required": []string{"message_ids"},
	}
}

// Execute executes the tool
func (t *MarkAsReadTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	messageIDs, err := stringListParam(params, "message_ids")
	if err != nil {
		return nil, err
	}
	if len(messageIDs) == 0 {
		return nil, fmt.Errorf("message_ids is required")
	}
	result, err := t.mail.MarkAsRead(ctx, messageIDs, boolParam(params, "inbox_only"))
	if err != nil {
		return nil, fmt.Errorf("failed to mark as read: %w", err)
	}
	return bulkResult(result), nil
}

// DeleteEmailsTool deletes messages by Message-ID
type DeleteEmailsTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewDeleteEmailsTool creates a new delete emails tool
func NewDeleteEmailsTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *DeleteEmailsTool {
	return &DeleteEmailsTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *DeleteEmailsTool) Name() string {
	return "delete_emails"
}

// Description returns the tool description
func (t *DeleteEmailsTool) Description() string {
	return "Delete messages by Message-ID; reports how many succeeded and which could not be found"
}

// InputSchema returns the JSON schema for tool inputs
func (t *DeleteEmailsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message_ids": messageIDsSchema(),
			"inbox_only":  inboxOnlySchema(),
		},
		"required": []string{"message_ids"},
	}
}

// Execute executes the tool
func (t *DeleteEmailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	messageIDs, err := stringListParam(params, "message_ids")
	if err != nil {
		return nil, err
	}
	if len(messageIDs) == 0 {
		return nil, fmt.Errorf("message_ids is required")
	}
	result, err := t.mail.DeleteMails(ctx, messageIDs, boolParam(params, "inbox_only"))
	if err != nil {
		return nil, fmt.Errorf("failed to delete emails: %w", err)
	}
	return bulkResult(result), nil
}

// MoveEmailsTool moves messages into a target mailbox by Message-ID
type MoveEmailsTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewMoveEmailsTool creates a new move emails tool
func NewMoveEmailsTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *MoveEmailsTool {
	return &MoveEmailsTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *MoveEmailsTool) Name() string {
	return "move_emails"
}

// Description returns the tool description
func (t *MoveEmailsTool) Description() string {
	return "Move messages to a target mailbox by Message-ID; the target is resolved before anything is scanned"
}

// InputSchema returns the JSON schema for tool inputs
func (t *MoveEmailsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message_ids": messageIDsSchema(),
			"target_mailbox": map[string]interface{}{
				"type":        "string",
				"description": "Destination mailbox name",
			},
			"target_account": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Account owning the destination mailbox",
			},
			"inbox_only": inboxOnlySchema(),
		},
		"required": []string{"message_ids", "target_mailbox"},
	}
}

// Execute executes the tool
func (t *MoveEmailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	messageIDs, err := stringListParam(params, "message_ids")
	if err != nil {
		return nil, err
	}
	if len(messageIDs) == 0 {
		return nil, fmt.Errorf("message_ids is required")
	}
	targetMailbox := stringParam(params, "target_mailbox")
	if targetMailbox == "" {
		return nil, fmt.Errorf("target_mailbox is required")
	}
	result, err := t.mail.MoveMails(ctx, messageIDs, targetMailbox, stringParam(params, "target_account"), boolParam(params, "inbox_only"))
	if err != nil {
		return nil, fmt.Errorf("failed to move emails: %w", err)
	}
	return bulkResult(result), nil
}
