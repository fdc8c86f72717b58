package tools

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
	"github.com/LionSR/mcp-apple/internal/mail"
	"github.com/LionSR/mcp-apple/pkg/types"
)

// MailService is the slice of the mail client the tools consume.
type MailService interface {
	Accounts(ctx context.Context) ([]types.Account, error)
	MailboxHierarchy(ctx context.Context, accountName string) (*types.MailboxHierarchy, error)
	UnreadMails(ctx context.Context, limit int) ([]types.EmailMessage, error)
	LatestMails(ctx context.Context, accountName string, limit int) ([]types.EmailMessage, error)
	SearchMails(ctx context.Context, term string, limit int) ([]types.EmailMessage, error)
	SearchInbox(ctx context.Context, term string, limit int) ([]types.EmailMessage, error)
	SearchInMailbox(ctx context.Context, term, mailbox, accountName string, limit int) ([]types.EmailMessage, error)
	SendMail(ctx context.Context, req mail.SendRequest) (string, error)
	MarkAsRead(ctx context.Context, messageIDs []string, inboxOnly bool) (types.OperationResult, error)
	DeleteMails(ctx context.Context, messageIDs []string, inboxOnly bool) (types.OperationResult, error)
	MoveMails(ctx context.Context, messageIDs []string, targetMailbox, targetAccount string, inboxOnly bool) (types.OperationResult, error)
}

// Registry manages MCP tools
type Registry struct {
	config *config.Config
	logger *logrus.Logger
	mail   MailService
	tools  map[string]Tool
}

// Tool represents an MCP tool
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// NewRegistry creates a new tool registry
func NewRegistry(cfg *config.Config, mailService MailService, logger *logrus.Logger) *Registry {
	reg := &Registry{
		config: cfg,
		logger: logger,
		mail:   mailService,
		tools:  make(map[string]Tool),
	}
	reg.registerTools()
	return reg
}

// registerTools registers all available tools
func (r *Registry) registerTools() {
	toolList := []Tool{
		NewGetAccountsTool(r.config, r.mail, r.logger),
		NewGetMailboxesTool(r.config, r.mail, r.logger),
		NewGetUnreadMailsTool(r.config, r.mail, r.logger),
		NewGetLatestMailsTool(r.config, r.mail, r.logger),
		NewSearchMailsTool(r.config, r.mail, r.logger),
		NewSearchInboxTool(r.config, r.mail, r.logger),
		NewSearchInMailboxTool(r.config, r.mail, r.logger),
		NewSendMailTool(r.config, r.mail, r.logger),
		NewMarkAsReadTool(r.config, r.mail, r.logger),
		NewDeleteEmailsTool(r.config, r.mail, r.logger),
		NewMoveEmailsTool(r.config, r.mail, r.logger),
	}

	for _, tool := range toolList {
		if tool != nil {
			r.tools[tool.Name()] = tool
			r.logger.WithField("tool", tool.Name()).Debug("Registered tool")
		}
	}

	r.logger.WithField("count", len(r.tools)).Info("Registered tools")
}

// GetTool returns a tool by name
func (r *Registry) GetTool(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// GetToolDefinitions returns tool definitions for MCP
func (r *Registry) GetToolDefinitions() []map[string]interface{} {
	definitions := make([]map[string]interface{}, 0, len(r.tools))
	for _, tool := range r.tools {
		definitions = append(definitions, map[string]interface{}{
			"name":        tool.Name(),
			"description": tool.Description(),
			"inputSchema": tool.InputSchema(),
		})
	}
	return definitions
}
