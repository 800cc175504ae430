// Package email sends templated notification mail. The Sender interface
// keeps SMTP out of the service layer and lets tests swap in a recorder.
package email

// Template names understood by the senders.
const (
	TemplateNewMessage        = "newMessage"
	TemplateEmailVerification = "emailVerification"
	TemplatePasswordReset     = "passwordReset"
	TemplateNewMatch          = "newMatch"
)

// Message is one outbound mail. Data feeds the named template.
type Message struct {
	To       string
	Template string
	Data     map[string]any
}

// Sender delivers a message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(msg Message) error
}

// NoopSender drops all mail. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) Send(Message) error { return nil }

var _ Sender = NoopSender{}
