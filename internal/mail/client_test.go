package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LionSR/mcp-apple/internal/config"
	"github.com/LionSR/mcp-apple/internal/osascript"
	"github.com/LionSR/mcp-apple/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:         "debug",
		ScriptTimeout:    5 * time.Second,
		HierarchyTimeout: 10 * time.Second,
		SearchLimit:      20,
		Search: config.SearchScope{
			AccountLimit:       5,
			MailboxScanLimit:   20,
			MessagesPerMailbox: 50,
			PriorityNames:      []string{"INBOX", "Sent"},
		},
		UnreadSampleThreshold: 500,
		UnreadSampleSize:      100,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// respond pushes v through a JSON round trip into out, the same way the real
// executor decodes host payloads.
func respond(out any, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// fakeHost stands in for the osascript bridge. Message slices are keyed by
// "account/mailbox" and must be ordered newest first, matching how Mail.app
// exposes a mailbox's messages.
type fakeHost struct {
	accounts  []types.Account
	mailboxes map[string][]mailboxName
	messages  map[string][]types.EmailMessage

	resolveErr error
	failApply  map[string]string

	listMessageCalls int
	applyCalls       []applyActionArgs
	sendArgs         *sendMailArgs
}

func (h *fakeHost) Run(_ context.Context, cmd osascript.Command, _ time.Duration, out any) error {
	switch cmd.Op {
	case "list_accounts":
		return respond(out, h.accounts)

	case "list_mailbox_names":
		args := cmd.Args.(accountArgs)
		names, ok := h.mailboxes[args.Account]
		if !ok {
			return &osascript.HostExecutionError{Op: cmd.Op, Message: "Account not found: " + args.Account}
		}
		return respond(out, names)

	case "list_messages":
		h.listMessageCalls++
		args := cmd.Args.(messageListArgs)
		account := args.Account
		if account == "" {
			account = h.firstAccountWithMailbox(args.Mailbox)
		}
		all, ok := h.messages[account+"/"+args.Mailbox]
		if !ok {
			return &osascript.HostExecutionError{Op: cmd.Op, Message: "Mailbox not found: " + args.Mailbox}
		}
		var result []types.EmailMessage
		for i, m := range all {
			if args.ScanLimit > 0 && i >= args.ScanLimit {
				break
			}
			if args.UnreadOnly && m.IsRead {
				continue
			}
			if args.ContentMode == contentNone {
				m.Content = ""
				m.Recipients = nil
			}
			result = append(result, m)
			if len(result) >= args.Limit {
				break
			}
		}
		return respond(out, result)

	case "resolve_mailbox":
		if h.resolveErr != nil {
			return h.resolveErr
		}
		args := cmd.Args.(resolveMailboxArgs)
		account := args.Account
		if account == "" {
			account = h.firstAccountWithMailbox(args.Mailbox)
		}
		if _, ok := h.messages[account+"/"+args.Mailbox]; !ok {
			return &osascript.HostExecutionError{Op: cmd.Op, Message: "Mailbox not found: " + args.Mailbox}
		}
		return respond(out, resolvedMailbox{Account: account, Mailbox: args.Mailbox})

	case "apply_action":
		args := cmd.Args.(applyActionArgs)
		h.applyCalls = append(h.applyCalls, args)
		all := h.messages[args.Account+"/"+args.Mailbox]
		var result actionResult
		for _, id := range args.MessageIDs {
			for _, m := range all {
				if m.MessageID == id {
					if message, failed := h.failApply[id]; failed {
						result.Failed = append(result.Failed, actionFailure{ID: id, Message: message})
					} else {
						result.Applied = append(result.Applied, id)
					}
					break
				}
			}
		}
		return respond(out, result)

	case "send_mail":
		args := cmd.Args.(sendMailArgs)
		h.sendArgs = &args
		return respond(out, fmt.Sprintf("Email sent to %s", args.To[0]))

	default:
		return fmt.Errorf("fake host: unknown op %s", cmd.Op)
	}
}

func (h *fakeHost) firstAccountWithMailbox(mailbox string) string {
	for _, account := range h.accounts {
		if _, ok := h.messages[account.Name+"/"+mailbox]; ok {
			return account.Name
		}
	}
	return ""
}

func msg(messageID, subject, sender, received string, read bool) types.EmailMessage {
	return types.EmailMessage{
		ID:           messageID,
		MessageID:    messageID,
		Subject:      subject,
		Sender:       sender,
		DateSent:     received,
		DateReceived: received,
		IsRead:       read,
	}
}

func newTestClient(host *fakeHost, cfg *config.Config) *Client {
	if cfg == nil {
		cfg = testConfig()
	}
	return NewClient(cfg, host, testLogger())
}

func TestAccountsFiltersDisabledByConfig(t *testing.T) {
	host := &fakeHost{
		accounts: []types.Account{
			{Name: "Work", Enabled: true},
			{Name: "Personal", Enabled: true},
		},
	}
	cfg := testConfig()
	cfg.DisabledAccounts = []string{"personal"}

	accounts, err := newTestClient(host, cfg).Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Work", accounts[0].Name)
}

func TestActiveAccountsSkipsDisabledInMail(t *testing.T) {
	host := &fakeHost{
		accounts: []types.Account{
			{Name: "Work", Enabled: true},
			{Name: "Old", Enabled: false},
		},
	}

	active, err := newTestClient(host, nil).activeAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Work", active[0].Name)
}

func TestUnreadMailsCollectsAcrossInboxes(t *testing.T) {
	host := &fakeHost{
		accounts: []types.Account{
			{Name: "Work", Enabled: true},
			{Name: "Personal", Enabled: true},
		},
		mailboxes: map[string][]mailboxName{
			"Work":     {{Name: "INBOX"}, {Name: "Archive"}},
			"Personal": {{Name: "INBOX"}},
		},
		messages: map[string][]types.EmailMessage{
			"Work/INBOX": {
				msg("<w2@x>", "status", "boss@work", "2026-03-02T10:00:00Z", false),
				msg("<w1@x>", "hello", "peer@work", "2026-03-01T10:00:00Z", true),
			},
			"Personal/INBOX": {
				msg("<p1@x>", "dinner", "friend@home", "2026-03-03T10:00:00Z", false),
			},
		},
	}

	messages, err := newTestClient(host, nil).UnreadMails(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	// Newest first across both inboxes; read messages excluded.
	assert.Equal(t, "<p1@x>", messages[0].MessageID)
	assert.Equal(t, "<w2@x>", messages[1].MessageID)
}

func TestLatestMailsRequiresAccount(t *testing.T) {
	_, err := newTestClient(&fakeHost{}, nil).LatestMails(context.Background(), "", 5)
	assert.Error(t, err)
}

func TestLatestMailsNewestFirst(t *testing.T) {
	host := &fakeHost{
		accounts: []types.Account{{Name: "Work", Enabled: true}},
		mailboxes: map[string][]mailboxName{
			"Work": {{Name: "INBOX"}, {Name: "Sent"}},
		},
		messages: map[string][]types.EmailMessage{
			"Work/INBOX": {
				msg("<b@x>", "b", "b@x", "2026-03-02T10:00:00Z", true),
				msg("<a@x>", "a", "a@x", "2026-03-01T10:00:00Z", true),
			},
		},
	}

	messages, err := newTestClient(host, nil).LatestMails(context.Background(), "Work", 1)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "<b@x>", messages[0].MessageID)
}

func TestMailboxHierarchyRequiresAccount(t *testing.T) {
	_, err := newTestClient(&fakeHost{}, nil).MailboxHierarchy(context.Background(), "")
	assert.Error(t, err)
}
