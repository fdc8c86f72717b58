package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/LionSR/mcp-apple/internal/osascript"
)

// SendRequest describes an outgoing message. AccountName is optional; when
// set, the message is sent from that account's primary address.
type SendRequest struct {
	To          []string
	CC          []string
	BCC         []string
	Subject     string
	Body        string
	AccountName string
}

// SendMail composes and sends a message through Mail.app and returns the
// host's confirmation string. Sending has no rollback: a timeout mid-send
// leaves the outcome indeterminate.
func (c *Client) SendMail(ctx context.Context, req SendRequest) (string, error) {
	if len(req.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if req.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}

	sender := ""
	if req.AccountName != "" {
		accounts, err := c.Accounts(ctx)
		if err != nil {
			return "", err
		}
		found := false
		for _, account := range accounts {
			if !strings.EqualFold(account.Name, req.AccountName) {
				continue
			}
			found = true
			if len(account.EmailAddresses) > 0 {
				sender = account.EmailAddresses[0]
			}
			break
		}
		if !found {
			return "", fmt.Errorf("account not found: %s", req.AccountName)
		}
	}

	args := sendMailArgs{
		To:      req.To,
		CC:      req.CC,
		BCC:     req.BCC,
		Subject: req.Subject,
		Body:    req.Body,
		Sender:  sender,
	}
	if args.CC == nil {
		args.CC = []string{}
	}
	if args.BCC == nil {
		args.BCC = []string{}
	}

	var confirmation string
	cmd := osascript.Command{Op: "send_mail", Body: sendMailBody, Args: args}
	if err := c.runner.Run(ctx, cmd, c.config.ScriptTimeout, &confirmation); err != nil {
		return "", err
	}
	return confirmation, nil
}
