package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/osascript"
	"github.com/LionSR/mcp-apple/pkg/types"
)

// bulkAction is the host-side operation applied to each located message.
type bulkAction string

const (
	actionMarkRead bulkAction = "markRead"
	actionDelete   bulkAction = "delete"
	actionMove     bulkAction = "move"
)

// MarkAsRead marks the messages with the given Message-IDs as read. With
// inboxOnly set, only inbox-like mailboxes are scanned.
func (c *Client) MarkAsRead(ctx context.Context, messageIDs []string, inboxOnly bool) (types.OperationResult, error) {
	return c.bulkApply(ctx, actionMarkRead, messageIDs, inboxOnly, nil)
}

// DeleteMails deletes the messages with the given Message-IDs.
func (c *Client) DeleteMails(ctx context.Context, messageIDs []string, inboxOnly bool) (types.OperationResult, error) {
	return c.bulkApply(ctx, actionDelete, messageIDs, inboxOnly, nil)
}

// MoveMails moves the messages with the given Message-IDs into
// targetMailbox, optionally qualified by targetAccount. The destination is
// resolved before any source mailbox is scanned; an unresolvable target
// short-circuits with a single error and zero moved.
func (c *Client) MoveMails(ctx context.Context, messageIDs []string, targetMailbox, targetAccount string, inboxOnly bool) (types.OperationResult, error) {
	result := types.OperationResult{Errors: []string{}}
	if targetMailbox == "" {
		result.Errors = append(result.Errors, "Target mailbox is required")
		return result, nil
	}
	target, err := c.resolveMailbox(ctx, targetMailbox, targetAccount)
	if err != nil {
		var hostErr *osascript.HostExecutionError
		if errors.As(err, &hostErr) {
			result.Errors = append(result.Errors, fmt.Sprintf("Could not resolve target mailbox %q: %s", targetMailbox, hostErr.Message))
			return result, nil
		}
		return result, err
	}
	return c.bulkApply(ctx, actionMove, messageIDs, inboxOnly, target)
}

// bulkApply maintains a working set of Message-IDs and walks the scope
// mailbox by mailbox, newest-first within each, applying the action to any
// message still in the set. Scanning stops entirely once the set is empty;
// that early exit is what bounds the worst-case scan cost. Identifiers left
// over after the walk are reported as one joined "could not find" error, and
// per-identifier action failures are reported individually while the rest
// continue.
func (c *Client) bulkApply(ctx context.Context, action bulkAction, messageIDs []string, inboxOnly bool, target *resolvedMailbox) (types.OperationResult, error) {
	result := types.OperationResult{Errors: []string{}}
	if len(messageIDs) == 0 {
		return result, nil
	}

	working := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		working[id] = struct{}{}
	}

	accounts, err := c.activeAccounts(ctx)
	if err != nil {
		return result, err
	}

scan:
	for _, account := range accounts {
		mailboxes, err := c.scopeMailboxes(ctx, account.Name, inboxOnly)
		if err != nil {
			return result, err
		}
		for _, mailbox := range mailboxes {
			if len(working) == 0 {
				break scan
			}
			args := applyActionArgs{
				Account:    account.Name,
				Mailbox:    mailbox,
				Action:     string(action),
				MessageIDs: remainingIDs(messageIDs, working),
			}
			if target != nil {
				args.TargetAccount = target.Account
				args.TargetMailbox = target.Mailbox
			}
			applied, err := c.applyAction(ctx, args)
			if err != nil {
				return result, err
			}
			for _, id := range applied.Applied {
				delete(working, id)
				result.SucceededCount++
			}
			for _, failure := range applied.Failed {
				delete(working, failure.ID)
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", failure.ID, failure.Message))
			}
		}
	}

	if len(working) > 0 {
		missing := remainingIDs(messageIDs, working)
		result.Errors = append(result.Errors, "Could not find messages: "+strings.Join(missing, ", "))
	}

	c.logger.WithFields(logrus.Fields{
		"action":    string(action),
		"requested": len(messageIDs),
		"succeeded": result.SucceededCount,
		"errors":    len(result.Errors),
	}).Debug("Bulk operation finished")

	return result, nil
}

// scopeMailboxes enumerates the mailbox names a bulk operation may scan in
// one account: inbox-like names only on the fast path, everything otherwise.
func (c *Client) scopeMailboxes(ctx context.Context, accountName string, inboxOnly bool) ([]string, error) {
	names, err := c.listMailboxNames(ctx, accountName)
	if err != nil {
		return nil, err
	}
	mailboxes := make([]string, 0, len(names))
	for _, mb := range names {
		if inboxOnly && !isInboxName(mb.Name) {
			continue
		}
		mailboxes = append(mailboxes, mb.Name)
	}
	return mailboxes, nil
}

// remainingIDs returns the ids still in the working set, preserving the
// caller's original order for stable error messages.
func remainingIDs(messageIDs []string, working map[string]struct{}) []string {
	remaining := make([]string, 0, len(working))
	for _, id := range messageIDs {
		if _, ok := working[id]; ok {
			remaining = append(remaining, id)
		}
	}
	return remaining
}
