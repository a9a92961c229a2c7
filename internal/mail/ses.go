package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/charmbracelet/log"
)

// SESAPI is the part of the SES client used here.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESComposer sends messages through Amazon SES.
type SESComposer struct {
	client SESAPI
	from   string
	logger *log.Logger
}

// NewSESComposer loads the default AWS configuration for region.
func NewSESComposer(ctx context.Context, region, from string, logger *log.Logger) (*SESComposer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("AWS config load failed: %w", err)
	}
	return NewSESComposerWithClient(ses.NewFromConfig(cfg), from, logger), nil
}

func NewSESComposerWithClient(client SESAPI, from string, logger *log.Logger) *SESComposer {
	return &SESComposer{client: client, from: from, logger: logger}
}

// Available requires a client and a verified sender address.
func (s *SESComposer) Available(context.Context) bool {
	return s.client != nil && s.from != ""
}

func (s *SESComposer) Compose(ctx context.Context, msg Message) error {
	if !s.Available(ctx) {
		return ErrUnavailable
	}
	if msg.From == "" {
		msg.From = s.from
	}

	raw, err := BuildRaw(msg)
	if err != nil {
		return err
	}

	input := &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: raw},
		Source:       aws.String(msg.From),
		Destinations: msg.To,
	}
	if _, err := s.client.SendRawEmail(ctx, input); err != nil {
		s.logger.Error("SES send error", "error", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// BuildRaw renders msg as a MIME message. With an attachment the body becomes multipart/mixed.
func BuildRaw(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }

	header("From", msg.From)
	header("To", strings.Join(msg.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("MIME-Version", "1.0")

	if msg.Attachment == "" {
		header("Content-Type", `text/plain; charset="utf-8"`)
		header("Content-Transfer-Encoding", "8bit")
		buf.WriteString("\r\n")
		buf.WriteString(msg.Body)
		return buf.Bytes(), nil
	}

	data, err := os.ReadFile(msg.Attachment)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	mw := multipart.NewWriter(&buf)
	header("Content-Type", fmt.Sprintf(`multipart/mixed; boundary="%s"`, mw.Boundary()))
	buf.WriteString("\r\n")

	text, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/plain; charset="utf-8"`},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := text.Write([]byte(msg.Body)); err != nil {
		return nil, err
	}

	name := filepath.Base(msg.Attachment)
	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {ctype},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": name})},
	})
	if err != nil {
		return nil, err
	}

	lw := &lineWriter{w: part}
	enc := base64.NewEncoder(base64.StdEncoding, lw)
	if _, err := enc.Write(data); err != nil {
		return nil, fmt.Errorf("failed to encode attachment: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode attachment: %w", err)
	}
	if err := lw.end(); err != nil {
		return nil, fmt.Errorf("failed to encode attachment: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// base64LineLength is the RFC 2045 limit for encoded lines.
const base64LineLength = 76

// lineWriter breaks its input into CRLF-terminated lines of [base64LineLength].
type lineWriter struct {
	w   io.Writer
	col int
}

func (l *lineWriter) Write(p []byte) (int, error) {
	n := 0
	for len(p) > 0 {
		chunk := min(base64LineLength-l.col, len(p))
		if _, err := l.w.Write(p[:chunk]); err != nil {
			return n, err
		}
		n += chunk
		l.col += chunk
		p = p[chunk:]

		if l.col == base64LineLength {
			if _, err := io.WriteString(l.w, "\r\n"); err != nil {
				return n, err
			}
			l.col = 0
		}
	}
	return n, nil
}

// end terminates a partial last line.
func (l *lineWriter) end() error {
	if l.col == 0 {
		return nil
	}
	l.col = 0
	_, err := io.WriteString(l.w, "\r\n")
	return err
}
