package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
	"github.com/LionSR/mcp-apple/internal/mail"
)

// SendMailTool sends a new email through Mail.app
type SendMailTool struct {
	config *config.Config
	mail   MailService
	logger *logrus.Logger
}

// NewSendMailTool creates a new send mail tool
func NewSendMailTool(cfg *config.Config, mailService MailService, logger *logrus.Logger) *SendMailTool {
	return &SendMailTool{config: cfg, mail: mailService, logger: logger}
}

// Name returns the tool name
func (t *SendMailTool) Name() string {
	return "send_mail"
}

// Description returns the tool description
func (t *SendMailTool) Description() string {
	return "Send an email through Mail.app with optional CC, BCC, and sending account"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SendMailTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"to": map[string]interface{}{
				"type":        "string",
				"description": "Recipient email address(es) (comma-separated)",
			},
			"subject": map[string]interface{}{
				"type":        "string",
				"description": "Email subject",
			},
			"body": map[string]interface{}{
				"type":        "string",
				"description": "Plain text body",
			},
			"cc": map[string]interface{}{
				"type":        "string",
				"description": "Optional: CC recipients (comma-separated)",
			},
			"bcc": map[string]interface{}{
				"type":        "string",
				"description": "Optional: BCC recipients (comma-separated)",
			},
			"account_name": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Account to send from",
			},
		},
		"required": []string{"to", "subject", "body"},
	}
}

// Execute executes the tool
func (t *SendMailTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	toStr := stringParam(params, "to")
	if toStr == "" {
		return nil, fmt.Errorf("to is required")
	}
	subject := stringParam(params, "subject")
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	body := stringParam(params, "body")
	if body == "" {
		return nil, fmt.Errorf("body is required")
	}

	req := mail.SendRequest{
		To:          splitAddresses(toStr),
		CC:          splitAddresses(stringParam(params, "cc")),
		BCC:         splitAddresses(stringParam(params, "bcc")),
		Subject:     subject,
		Body:        body,
		AccountName: stringParam(params, "account_name"),
	}

	confirmation, err := t.mail.SendMail(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	return map[string]interface{}{
		"success": true,
		"message": confirmation,
	}, nil
}

func splitAddresses(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	addresses := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			addresses = append(addresses, trimmed)
		}
	}
	return addresses
}
