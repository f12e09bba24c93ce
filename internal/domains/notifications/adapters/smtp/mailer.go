// Package smtp delivers order summaries to the business mailbox with the
// customer's design files attached.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/ports"
)

// DefaultSendTimeout bounds one relay round trip when the caller supplies
// no deadline. An unbounded mail call could stall the request that
// triggered it.
const DefaultSendTimeout = 15 * time.Second

var _ ports.Dispatcher = (*Mailer)(nil)

// Mailer composes and sends the order summary over SMTP.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
	to       string
	timeout  time.Duration
}

// Config carries the relay settings. To is the business mailbox; messages
// are sent from and to it.
type Config struct {
	Host     string
	Port     int
	From     string
	Password string
	To       string
	Timeout  time.Duration
}

func NewMailer(cfg Config) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSendTimeout
	}
	if cfg.To == "" {
		cfg.To = cfg.From
	}
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		password: cfg.Password,
		to:       cfg.To,
		timeout:  cfg.Timeout,
	}
}

// Dispatch sends one notification. Each attachment is written exactly once,
// in submission order, named after the order and its position. The send is
// bounded by the context deadline or the configured timeout, whichever is
// tighter.
func (m *Mailer) Dispatch(ctx context.Context, notification domain.OrderNotification) error {
	if m == nil || m.host == "" {
		return fmt.Errorf("smtp mailer not configured")
	}

	body, err := buildBody(notification.Summary)
	if err != nil {
		return fmt.Errorf("compose notification body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("New Banner Order - Order ID: %s", notification.Summary.OrderID))
	msg.SetBody("text/html", body)

	for i, att := range notification.Attachments {
		data := att.Data
		name := fmt.Sprintf("order_%s_file_%d_%s", notification.Summary.OrderID, i+1, att.Filename)
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		msg.Attach(name, settings...)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.send(ctx, msg)
}

// send runs the blocking dial/send in its own goroutine so the context
// deadline is honored; gomail itself has no context support.
func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	dialer := gomail.NewDialer(m.host, m.port, m.from, m.password)
	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

var bodyTemplate = template.Must(template.New("order-email").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(`<html>
<body>
	<h2>New Banner Order Received</h2>

	<h3>Customer Details:</h3>
	<p><strong>Name:</strong> {{.CustomerName}}</p>
	<p><strong>Email:</strong> {{.CustomerEmail}}</p>
	<p><strong>Contact Number:</strong> {{.ContactNumber}}</p>

	<h3>Order Details:</h3>
	<p><strong>Order ID:</strong> {{.OrderID}}</p>
	<p><strong>Total Amount:</strong> &#8377;{{.TotalPrice}}</p>

	<h3>Banner Specifications:</h3>
	<table border="1" style="border-collapse: collapse; width: 100%;">
		<tr>
			<th>Item</th>
			<th>Size</th>
			<th>Material</th>
			<th>Grommets</th>
			<th>Lamination</th>
			<th>Price</th>
		</tr>
		{{- range $i, $item := .Items}}
		<tr>
			<td>{{add $i 1}}</td>
			<td>{{$item.WidthCm}} x {{$item.HeightCm}} cm</td>
			<td>{{$item.Material}}</td>
			<td>{{if $item.Grommets}}Yes{{else}}No{{end}}</td>
			<td>{{if $item.Lamination}}Yes{{else}}No{{end}}</td>
			<td>&#8377;{{$item.Price}}</td>
		</tr>
		{{- end}}
	</table>

	<p><strong>Note:</strong> Design files are attached to this email.</p>

	<p>Please contact the customer at {{.ContactNumber}} for any clarifications.</p>
</body>
</html>`))

func buildBody(summary domain.OrderSummary) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, summary); err != nil {
		return "", err
	}
	return buf.String(), nil
}
