// Package mail hands support messages to a mail transport.
//
// Two composers are provided:
//   - [SESComposer] : sends through Amazon SES with an optional single attachment
//   - [MailtoComposer] : opens a mailto: link in the user's mail client
package mail

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnavailable is returned when no mail transport can be used.
var ErrUnavailable = errors.New("mail service is not available")

// Message is a plain-text mail with at most one attachment (a file path).
type Message struct {
	To         []string
	From       string
	Subject    string
	Body       string
	Attachment string
}

// Composer delivers or drafts a message.
type Composer interface {
	Available(ctx context.Context) bool
	Compose(ctx context.Context, msg Message) error
}

// URLOpener opens URLs with the system handler.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// MailtoComposer drafts messages in the default mail client.
type MailtoComposer struct {
	opener URLOpener
	logger *log.Logger
}

func NewMailtoComposer(opener URLOpener, logger *log.Logger) *MailtoComposer {
	return &MailtoComposer{opener: opener, logger: logger}
}

func (m *MailtoComposer) Available(context.Context) bool { return m.opener != nil }

// Compose opens a mailto: URL. Attachments cannot be carried and are only logged.
func (m *MailtoComposer) Compose(ctx context.Context, msg Message) error {
	if !m.Available(ctx) {
		return ErrUnavailable
	}
	if msg.Attachment != "" {
		m.logger.Warn("mailto cannot carry attachments; attach it manually", "file", msg.Attachment)
	}
	return m.opener.Open(ctx, MailtoURL(msg))
}

// MailtoURL encodes msg as an RFC 6068 mailto: URL.
func MailtoURL(msg Message) string {
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = url.PathEscape(addr)
	}

	var q []string
	if msg.Subject != "" {
		q = append(q, "subject="+mailtoEscape(msg.Subject))
	}
	if msg.Body != "" {
		q = append(q, "body="+mailtoEscape(strings.ReplaceAll(msg.Body, "\n", "\r\n")))
	}

	u := "mailto:" + strings.Join(to, ",")
	if len(q) > 0 {
		u += "?" + strings.Join(q, "&")
	}
	return u
}

// mailtoEscape percent-encodes a header value. Spaces become %20, not "+".
func mailtoEscape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
