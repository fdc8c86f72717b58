package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LionSR/mcp-apple/internal/osascript"
	"github.com/LionSR/mcp-apple/pkg/types"
)

func bulkHost() *fakeHost {
	return &fakeHost{
		accounts: []types.Account{
			{Name: "Work", Enabled: true},
		},
		mailboxes: map[string][]mailboxName{
			"Work": {{Name: "INBOX"}, {Name: "Archive"}},
		},
		messages: map[string][]types.EmailMessage{
			"Work/INBOX": {
				msg("<a@x>", "a", "a@x", "2026-03-02T10:00:00Z", true),
				msg("<b@x>", "b", "b@x", "2026-03-01T10:00:00Z", false),
			},
			"Work/Archive": {
				msg("<c@x>", "c", "c@x", "2026-01-01T10:00:00Z", true),
			},
		},
	}
}

func TestMarkAsReadPartialSuccess(t *testing.T) {
	client := newTestClient(bulkHost(), nil)

	result, err := client.MarkAsRead(context.Background(), []string{"<a@x>", "<missing@x>"}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SucceededCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not find messages: <missing@x>", result.Errors[0])
}

func TestMarkAsReadAllFound(t *testing.T) {
	client := newTestClient(bulkHost(), nil)

	result, err := client.MarkAsRead(context.Background(), []string{"<a@x>", "<b@x>", "<c@x>"}, false)
	require.NoError(t, err)

	assert.Equal(t, 3, result.SucceededCount)
	assert.Empty(t, result.Errors)
}

func TestMarkAsReadIdempotentOnReadMessages(t *testing.T) {
	// <a@x> is already read; marking it again still reports success.
	client := newTestClient(bulkHost(), nil)

	result, err := client.MarkAsRead(context.Background(), []string{"<a@x>"}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SucceededCount)
	assert.Empty(t, result.Errors)
}

func TestBulkEarlyTerminationStopsScanning(t *testing.T) {
	host := bulkHost()
	client := newTestClient(host, nil)

	result, err := client.MarkAsRead(context.Background(), []string{"<a@x>", "<b@x>"}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SucceededCount)
	// Both ids resolve in INBOX; Archive is never scanned.
	require.Len(t, host.applyCalls, 1)
	assert.Equal(t, "INBOX", host.applyCalls[0].Mailbox)
}

func TestBulkInboxOnlySkipsOtherMailboxes(t *testing.T) {
	host := bulkHost()
	client := newTestClient(host, nil)

	result, err := client.MarkAsRead(context.Background(), []string{"<c@x>"}, true)
	require.NoError(t, err)

	assert.Equal(t, 0, result.SucceededCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not find messages: <c@x>", result.Errors[0])
	for _, call := range host.applyCalls {
		assert.Equal(t, "INBOX", call.Mailbox)
	}
}

func TestBulkEmptyIDsNoScan(t *testing.T) {
	host := bulkHost()
	client := newTestClient(host, nil)

	result, err := client.MarkAsRead(context.Background(), nil, false)
	require.NoError(t, err)

	assert.Zero(t, result.SucceededCount)
	assert.Empty(t, result.Errors)
	assert.Empty(t, host.applyCalls)
}

func TestDeleteMailsCountsPerIdentifier(t *testing.T) {
	client := newTestClient(bulkHost(), nil)

	result, err := client.DeleteMails(context.Background(), []string{"<a@x>", "<c@x>", "<nope@x>"}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SucceededCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not find messages: <nope@x>", result.Errors[0])
}

func TestBulkActionFailureReportedPerIdentifier(t *testing.T) {
	host := bulkHost()
	host.failApply = map[string]string{"<a@x>": "message is locked"}
	client := newTestClient(host, nil)

	result, err := client.MarkAsRead(context.Background(), []string{"<a@x>", "<b@x>"}, false)
	require.NoError(t, err)

	// The failing identifier gets its own error; the rest still succeed.
	assert.Equal(t, 1, result.SucceededCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "<a@x>: message is locked", result.Errors[0])
}

func TestMoveMailsResolvesTargetFirst(t *testing.T) {
	host := bulkHost()
	client := newTestClient(host, nil)

	result, err := client.MoveMails(context.Background(), []string{"<a@x>"}, "Archive", "Work", false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SucceededCount)
	assert.Empty(t, result.Errors)
	require.NotEmpty(t, host.applyCalls)
	assert.Equal(t, "Archive", host.applyCalls[0].TargetMailbox)
	assert.Equal(t, "Work", host.applyCalls[0].TargetAccount)
}

func TestMoveMailsUnresolvableTarget(t *testing.T) {
	host := bulkHost()
	host.resolveErr = &osascript.HostExecutionError{Op: "resolve_mailbox", Message: "Mailbox not found: Nowhere"}
	client := newTestClient(host, nil)

	result, err := client.MoveMails(context.Background(), []string{"<a@x>"}, "Nowhere", "", false)
	require.NoError(t, err)

	assert.Zero(t, result.SucceededCount)
	require.NotEmpty(t, result.Errors)
	// Resolution failure short-circuits before any mailbox scan.
	assert.Empty(t, host.applyCalls)
}

func TestMoveMailsRequiresTargetMailbox(t *testing.T) {
	host := bulkHost()
	client := newTestClient(host, nil)

	result, err := client.MoveMails(context.Background(), []string{"<a@x>"}, "", "", false)
	require.NoError(t, err)

	assert.Zero(t, result.SucceededCount)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, host.applyCalls)
}

func TestMoveMailsBridgeFailureAborts(t *testing.T) {
	host := bulkHost()
	host.resolveErr = &osascript.TimeoutError{Op: "resolve_mailbox"}
	client := newTestClient(host, nil)

	_, err := client.MoveMails(context.Background(), []string{"<a@x>"}, "Archive", "", false)
	require.Error(t, err)
	var timeoutErr *osascript.TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
}

func TestRemainingIDsPreservesOrder(t *testing.T) {
	working := map[string]struct{}{"<c@x>": {}, "<a@x>": {}}
	ids := []string{"<a@x>", "<b@x>", "<c@x>"}

	assert.Equal(t, []string{"<a@x>", "<c@x>"}, remainingIDs(ids, working))
}
