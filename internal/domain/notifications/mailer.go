package notifications

import "context"

// Message is one outbound email. CC is optional; HTML switches the content
// type of the body.
type Message struct {
	To      string
	CC      string
	Subject string
	Body    string
	HTML    bool
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
