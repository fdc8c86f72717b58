package mail

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/pkg/types"
)

// searchTarget is one (account, mailbox) pair a search is permitted to scan.
type searchTarget struct {
	account string
	mailbox string
}

// SearchMails is the priority-scoped variant: it scans only mailboxes whose
// name matches the configured priority set, across at most AccountLimit
// accounts, matching on subject and sender with content omitted.
func (c *Client) SearchMails(ctx context.Context, term string, limit int) ([]types.EmailMessage, error) {
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	if limit <= 0 {
		limit = c.config.SearchLimit
	}
	accounts, err := c.activeAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) > c.config.Search.AccountLimit {
		accounts = accounts[:c.config.Search.AccountLimit]
	}

	var targets []searchTarget
	for _, account := range accounts {
		names, err := c.listMailboxNames(ctx, account.Name)
		if err != nil {
			return nil, err
		}
		scanned := 0
		for _, mb := range names {
			if scanned >= c.config.Search.MailboxScanLimit {
				break
			}
			if !isPriorityName(mb.Name, c.config.Search.PriorityNames) {
				continue
			}
			targets = append(targets, searchTarget{account: account.Name, mailbox: mb.Name})
			scanned++
		}
	}
	return c.searchTargets(ctx, term, limit, targets, contentNone)
}

// SearchInbox scans exactly one inbox-like mailbox per active account and
// includes a short content preview in each result.
func (c *Client) SearchInbox(ctx context.Context, term string, limit int) ([]types.EmailMessage, error) {
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	if limit <= 0 {
		limit = c.config.SearchLimit
	}
	accounts, err := c.activeAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var targets []searchTarget
	for _, account := range accounts {
		inbox, err := c.inboxName(ctx, account.Name)
		if err != nil {
			return nil, err
		}
		if inbox == "" {
			continue
		}
		targets = append(targets, searchTarget{account: account.Name, mailbox: inbox})
	}
	return c.searchTargets(ctx, term, limit, targets, contentPreview)
}

// SearchInMailbox scans one named mailbox, optionally within one named
// account; with no account the first mailbox of that name across accounts
// is used. Content is omitted.
func (c *Client) SearchInMailbox(ctx context.Context, term, mailbox, accountName string, limit int) ([]types.EmailMessage, error) {
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	if mailbox == "" {
		return nil, fmt.Errorf("mailbox name is required")
	}
	if limit <= 0 {
		limit = c.config.SearchLimit
	}
	targets := []searchTarget{{account: accountName, mailbox: mailbox}}
	return c.searchTargets(ctx, term, limit, targets, contentNone)
}

// searchTargets is the shared scan core: each target is scanned newest-first
// up to MessagesPerMailbox, the whole search short-circuits once limit
// matches are collected, and when more than one mailbox contributed the
// results are re-sorted newest-first before truncation.
func (c *Client) searchTargets(ctx context.Context, term string, limit int, targets []searchTarget, contentMode string) ([]types.EmailMessage, error) {
	matched := make([]types.EmailMessage, 0, limit)
	contributed := 0
	for _, target := range targets {
		messages, err := c.listMessages(ctx, messageListArgs{
			Account:     target.account,
			Mailbox:     target.mailbox,
			ScanLimit:   c.config.Search.MessagesPerMailbox,
			Limit:       c.config.Search.MessagesPerMailbox,
			ContentMode: contentMode,
		})
		if err != nil {
			return nil, err
		}
		found := false
		for _, message := range messages {
			if !matchesTerm(message, term) {
				continue
			}
			matched = append(matched, message)
			found = true
			if len(matched) >= limit {
				break
			}
		}
		if found {
			contributed++
		}
		if len(matched) >= limit {
			break
		}
	}
	if contributed > 1 {
		sortNewestFirst(matched)
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	c.logger.WithFields(logrus.Fields{
		"term":    term,
		"targets": len(targets),
		"matches": len(matched),
	}).Debug("Search finished")
	return matched, nil
}

// matchesTerm reports whether the message's subject or sender contains the
// term, case-insensitively. Plain substring match; no tokenization, no
// ranking.
func matchesTerm(message types.EmailMessage, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(message.Subject), needle) ||
		strings.Contains(strings.ToLower(message.Sender), needle)
}

// isPriorityName classifies a mailbox against the configured priority set by
// case-insensitive exact or substring match. Classification is name-based,
// not an application-level flag.
func isPriorityName(name string, priority []string) bool {
	lowered := strings.ToLower(name)
	for _, p := range priority {
		candidate := strings.ToLower(p)
		if lowered == candidate || strings.Contains(lowered, candidate) {
			return true
		}
	}
	return false
}

func isInboxExact(name string) bool {
	return strings.EqualFold(name, "INBOX")
}

func isInboxName(name string) bool {
	return strings.Contains(strings.ToLower(name), "inbox")
}

// sortNewestFirst orders messages by received timestamp, newest first.
// Timestamps are ISO-8601 strings from the host; unparsable values sort by
// raw string comparison, which preserves order for the common UTC form.
func sortNewestFirst(messages []types.EmailMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		ti, iOK := parseISO(messages[i].DateReceived)
		tj, jOK := parseISO(messages[j].DateReceived)
		if iOK && jOK {
			return ti.After(tj)
		}
		return messages[i].DateReceived > messages[j].DateReceived
	})
}

func parseISO(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
