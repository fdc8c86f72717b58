package types

// Account is a snapshot of a Mail.app account. Snapshots are fetched fresh
// from the application on every call and are never cached.
type Account struct {
	Name           string   `json:"name"`
	EmailAddresses []string `json:"email_addresses"`
	Enabled        bool     `json:"enabled"`
	ID             string   `json:"id"`
}

// Mailbox is one node of an account's mailbox hierarchy. Path is
// "parent/name", or just the name for a root mailbox.
type Mailbox struct {
	Name         string   `json:"name"`
	MessageCount int      `json:"message_count"`
	UnreadCount  int      `json:"unread_count"`
	// UnreadEstimated marks mailboxes large enough that the unread count was
	// extrapolated from a sampled prefix rather than counted exactly.
	UnreadEstimated bool     `json:"unread_estimated,omitempty"`
	Path            string   `json:"path"`
	Parent          string   `json:"parent,omitempty"`
	Children        []string `json:"children"`
	AccountName     string   `json:"account_name"`
}

// MailboxHierarchy is the assembled forest for one account. Tree is keyed by
// mailbox name; Roots lists top-level names in lexicographic order; Total
// counts every node, virtual parents included.
type MailboxHierarchy struct {
	Tree  map[string]*Mailbox `json:"tree"`
	Roots []string            `json:"roots"`
	Total int                 `json:"total"`
}

// EmailMessage is a message snapshot. ID is Mail.app's transient numeric id
// and is not stable across moves; MessageID is the protocol-level Message-ID
// header and is the join key for bulk operations. Timestamps are ISO-8601
// strings. Content may be truncated or omitted depending on the operation.
type EmailMessage struct {
	ID           string   `json:"id"`
	MessageID    string   `json:"message_id"`
	Subject      string   `json:"subject"`
	Sender       string   `json:"sender"`
	Recipients   []string `json:"recipients,omitempty"`
	DateSent     string   `json:"date_sent"`
	DateReceived string   `json:"date_received"`
	Content      string   `json:"content,omitempty"`
	IsRead       bool     `json:"is_read"`
	IsFlagged    bool     `json:"is_flagged"`
	Mailbox      string   `json:"mailbox"`
	AccountName  string   `json:"account_name"`
}

// OperationResult reports the outcome of a bulk operation. Bulk operations
// are partial-tolerant: one failing identifier never aborts the others, so
// SucceededCount and Errors can both be non-zero.
type OperationResult struct {
	SucceededCount int      `json:"succeeded_count"`
	Errors         []string `json:"errors"`
}
