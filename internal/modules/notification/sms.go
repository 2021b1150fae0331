package notification

import (
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier is the fire-and-forget SMS contract. Implementations report
// success but callers must never fail a transaction on a false return.
type Notifier interface {
	Notify(phone, message string) bool
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSenderFromEnv() *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: os.Getenv("TWILIO_ACCOUNT_SID"),
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		}),
		from: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (s *TwilioSender) Notify(phone, message string) bool {
	if phone == "" {
		return false
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("sms_send_failed to=%s error=%q", phone, err)
		return false
	}
	return true
}
