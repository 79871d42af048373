package twilio

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier sends operator SMS through Twilio. One message per lead, no
// retries; failures are the caller's problem to log.
type Notifier struct {
	client *twilio.RestClient
	from   string
	to     string
}

// NewNotifier builds a notifier for a fixed destination number.
func NewNotifier(accountSID, authToken, from, to string) *Notifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Notifier{client: client, from: from, to: to}
}

func (n *Notifier) Notify(_ context.Context, message string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(message)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if resp.Sid != nil {
		log.Printf("sms sent to %s (sid %s)", n.to, *resp.Sid)
	}
	return nil
}
