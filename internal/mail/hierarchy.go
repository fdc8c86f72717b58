package mail

import (
	"sort"

	"github.com/LionSR/mcp-apple/pkg/types"
)

// buildHierarchy assembles the mailbox forest for one account from a flat
// scan. Mail.app exposes some containers only as parents of enumerable
// mailboxes, never directly; those are synthesized as virtual nodes with
// zero counts so no parent reference ever dangles.
func buildHierarchy(records []mailboxRecord, accountName string) *types.MailboxHierarchy {
	tree := make(map[string]*types.Mailbox, len(records))
	children := make(map[string][]string)
	var roots []string

	for _, record := range records {
		path := record.Name
		if record.Parent != "" {
			path = record.Parent + "/" + record.Name
		}
		tree[record.Name] = &types.Mailbox{
			Name:            record.Name,
			MessageCount:    record.MessageCount,
			UnreadCount:     record.UnreadCount,
			UnreadEstimated: record.UnreadEstimated,
			Path:            path,
			Parent:          record.Parent,
			AccountName:     accountName,
		}
		if record.Parent == "" {
			roots = append(roots, record.Name)
		} else {
			children[record.Parent] = append(children[record.Parent], record.Name)
		}
	}

	// Parents referenced but never enumerated become virtual roots.
	for parent := range children {
		if _, exists := tree[parent]; exists {
			continue
		}
		tree[parent] = &types.Mailbox{
			Name:        parent,
			Path:        parent,
			AccountName: accountName,
		}
		roots = append(roots, parent)
	}

	for name, node := range tree {
		kids := children[name]
		sort.Strings(kids)
		if kids == nil {
			kids = []string{}
		}
		node.Children = kids
	}
	sort.Strings(roots)
	if roots == nil {
		roots = []string{}
	}

	return &types.MailboxHierarchy{
		Tree:  tree,
		Roots: roots,
		Total: len(tree),
	}
}
