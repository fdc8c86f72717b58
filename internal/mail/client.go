package mail

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
	"github.com/LionSR/mcp-apple/internal/osascript"
	"github.com/LionSR/mcp-apple/pkg/types"
)

// previewLength bounds the content preview attached by operations that
// include a snippet of the body.
const previewLength = 300

// Client exposes the Mail.app object model over the osascript bridge. Every
// method is one or more fresh bridge round trips; no mail state is retained
// between calls.
type Client struct {
	runner osascript.Runner
	config *config.Config
	logger *logrus.Logger
}

// NewClient creates a new mail client
func NewClient(cfg *config.Config, runner osascript.Runner, logger *logrus.Logger) *Client {
	return &Client{
		runner: runner,
		config: cfg,
		logger: logger,
	}
}

// content modes for message listings
const (
	contentNone    = "none"
	contentPreview = "preview"
	contentFull    = "full"
)

type mailboxListArgs struct {
	Account         string `json:"account"`
	SampleThreshold int    `json:"sampleThreshold"`
	SampleSize      int    `json:"sampleSize"`
}

type accountArgs struct {
	Account string `json:"account"`
}

type messageListArgs struct {
	Account       string `json:"account"`
	Mailbox       string `json:"mailbox"`
	ScanLimit     int    `json:"scanLimit"`
	Limit         int    `json:"limit"`
	UnreadOnly    bool   `json:"unreadOnly"`
	ContentMode   string `json:"contentMode"`
	PreviewLength int    `json:"previewLength"`
}

type resolveMailboxArgs struct {
	Account string `json:"account"`
	Mailbox string `json:"mailbox"`
}

type applyActionArgs struct {
	Account       string   `json:"account"`
	Mailbox       string   `json:"mailbox"`
	Action        string   `json:"action"`
	MessageIDs    []string `json:"messageIds"`
	ScanLimit     int      `json:"scanLimit"`
	TargetAccount string   `json:"targetAccount"`
	TargetMailbox string   `json:"targetMailbox"`
}

type sendMailArgs struct {
	To      []string `json:"to"`
	CC      []string `json:"cc"`
	BCC     []string `json:"bcc"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	Sender  string   `json:"sender"`
}

// mailboxRecord is one row of the flat per-account mailbox scan.
type mailboxRecord struct {
	Name            string `json:"name"`
	Parent          string `json:"parent"`
	MessageCount    int    `json:"message_count"`
	UnreadCount     int    `json:"unread_count"`
	UnreadEstimated bool   `json:"unread_estimated"`
}

// mailboxName is the cheap name-only listing used for scope enumeration.
type mailboxName struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

type resolvedMailbox struct {
	Account string `json:"account"`
	Mailbox string `json:"mailbox"`
}

type actionFailure struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type actionResult struct {
	Applied []string        `json:"applied"`
	Failed  []actionFailure `json:"failed"`
}

// Accounts returns a fresh snapshot of all Mail.app accounts, minus any
// excluded by configuration.
func (c *Client) Accounts(ctx context.Context) ([]types.Account, error) {
	var records []types.Account
	cmd := osascript.Command{Op: "list_accounts", Body: listAccountsBody}
	if err := c.runner.Run(ctx, cmd, c.config.ScriptTimeout, &records); err != nil {
		return nil, err
	}
	accounts := make([]types.Account, 0, len(records))
	for _, account := range records {
		if c.config.AccountDisabled(account.Name) {
			continue
		}
		if account.EmailAddresses == nil {
			account.EmailAddresses = []string{}
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// activeAccounts filters Accounts down to those enabled in Mail.app; search
// and bulk scopes only visit these.
func (c *Client) activeAccounts(ctx context.Context) ([]types.Account, error) {
	accounts, err := c.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	active := accounts[:0]
	for _, account := range accounts {
		if account.Enabled {
			active = append(active, account)
		}
	}
	return active, nil
}

// MailboxHierarchy scans one account's mailboxes flat via the bridge and
// assembles the forest. Runs under the extended hierarchy timeout since
// large accounts take far longer than a normal call.
func (c *Client) MailboxHierarchy(ctx context.Context, accountName string) (*types.MailboxHierarchy, error) {
	if accountName == "" {
		return nil, fmt.Errorf("account name is required")
	}
	records, err := c.listMailboxes(ctx, accountName)
	if err != nil {
		return nil, err
	}
	hierarchy := buildHierarchy(records, accountName)
	c.logger.WithFields(logrus.Fields{
		"account": accountName,
		"total":   hierarchy.Total,
		"roots":   len(hierarchy.Roots),
	}).Debug("Assembled mailbox hierarchy")
	return hierarchy, nil
}

func (c *Client) listMailboxes(ctx context.Context, accountName string) ([]mailboxRecord, error) {
	var records []mailboxRecord
	cmd := osascript.Command{
		Op:   "list_mailboxes",
		Body: listMailboxesBody,
		Args: mailboxListArgs{
			Account:         accountName,
			SampleThreshold: c.config.UnreadSampleThreshold,
			SampleSize:      c.config.UnreadSampleSize,
		},
	}
	if err := c.runner.Run(ctx, cmd, c.config.HierarchyTimeout, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) listMailboxNames(ctx context.Context, accountName string) ([]mailboxName, error) {
	var names []mailboxName
	cmd := osascript.Command{
		Op:   "list_mailbox_names",
		Body: listMailboxNamesBody,
		Args: accountArgs{Account: accountName},
	}
	if err := c.runner.Run(ctx, cmd, c.config.ScriptTimeout, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) listMessages(ctx context.Context, args messageListArgs) ([]types.EmailMessage, error) {
	if args.ContentMode == "" {
		args.ContentMode = contentNone
	}
	if args.PreviewLength == 0 {
		args.PreviewLength = previewLength
	}
	var messages []types.EmailMessage
	cmd := osascript.Command{Op: "list_messages", Body: listMessagesBody, Args: args}
	if err := c.runner.Run(ctx, cmd, c.config.ScriptTimeout, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) resolveMailbox(ctx context.Context, mailbox, account string) (*resolvedMailbox, error) {
	var resolved resolvedMailbox
	cmd := osascript.Command{
		Op:   "resolve_mailbox",
		Body: resolveMailboxBody,
		Args: resolveMailboxArgs{Account: account, Mailbox: mailbox},
	}
	if err := c.runner.Run(ctx, cmd, c.config.ScriptTimeout, &resolved); err != nil {
		return nil, err
	}
	return &resolved, nil
}

func (c *Client) applyAction(ctx context.Context, args applyActionArgs) (*actionResult, error) {
	var result actionResult
	cmd := osascript.Command{Op: "apply_action", Body: applyActionBody, Args: args}
	if err := c.runner.Run(ctx, cmd, c.config.ScriptTimeout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnreadMails returns up to limit unread messages drawn from the inbox-like
// mailbox of every active account, newest first, with a content preview.
func (c *Client) UnreadMails(ctx context.Context, limit int) ([]types.EmailMessage, error) {
	if limit <= 0 {
		limit = c.config.SearchLimit
	}
	accounts, err := c.activeAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var collected []types.EmailMessage
	contributed := 0
	for _, account := range accounts {
		inbox, err := c.inboxName(ctx, account.Name)
		if err != nil {
			return nil, err
		}
		if inbox == "" {
			continue
		}
		messages, err := c.listMessages(ctx, messageListArgs{
			Account:     account.Name,
			Mailbox:     inbox,
			ScanLimit:   c.config.Search.MessagesPerMailbox,
			Limit:       limit,
			UnreadOnly:  true,
			ContentMode: contentPreview,
		})
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			contributed++
		}
		collected = append(collected, messages...)
	}
	if contributed > 1 {
		sortNewestFirst(collected)
	}
	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, nil
}

// LatestMails returns the newest messages across one account's inbox-like
// mailboxes, newest first.
func (c *Client) LatestMails(ctx context.Context, accountName string, limit int) ([]types.EmailMessage, error) {
	if accountName == "" {
		return nil, fmt.Errorf("account name is required")
	}
	if limit <= 0 {
		limit = c.config.SearchLimit
	}
	names, err := c.listMailboxNames(ctx, accountName)
	if err != nil {
		return nil, err
	}
	var collected []types.EmailMessage
	contributed := 0
	for _, mb := range names {
		if !isInboxName(mb.Name) {
			continue
		}
		messages, err := c.listMessages(ctx, messageListArgs{
			Account:     accountName,
			Mailbox:     mb.Name,
			ScanLimit:   limit,
			Limit:       limit,
			ContentMode: contentPreview,
		})
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			contributed++
		}
		collected = append(collected, messages...)
	}
	if contributed > 1 {
		sortNewestFirst(collected)
	}
	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, nil
}

// inboxName picks the account's inbox-like mailbox, preferring an exact
// "INBOX" match over substring matches.
func (c *Client) inboxName(ctx context.Context, accountName string) (string, error) {
	names, err := c.listMailboxNames(ctx, accountName)
	if err != nil {
		return "", err
	}
	fallback := ""
	for _, mb := range names {
		if mb.Parent != "" {
			continue
		}
		if isInboxExact(mb.Name) {
			return mb.Name, nil
		}
		if fallback == "" && isInboxName(mb.Name) {
			fallback = mb.Name
		}
	}
	return fallback, nil
}
