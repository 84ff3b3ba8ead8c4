package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for notification
// emails (welcome, password changed). Challenge emails never go through the
// queue; they are sent synchronously so a delivery failure can abort the
// operation that issued them.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}
