package notifications

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"
)

const twilioMessagesURL = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// Recipient is one admin WhatsApp number; order matters, admins are
// notified sequentially.
type Recipient struct {
	Name  string
	Phone string
}

// Notifier sends booking notifications over Twilio's WhatsApp API. Without
// credentials it logs what it would have sent and reports nothing as
// delivered, so local development works without a Twilio account.
type Notifier struct {
	accountSID string
	authToken  string
	fromPhone  string
	recipients []Recipient
	stats      *Stats
	client     *http.Client
	baseURL    string

	// Delay between sequential sends; Twilio's trial tier throttles bursts.
	adminDelay  time.Duration
	clientDelay time.Duration
}

// NewNotifierFromEnv reads TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN,
// TWILIO_PHONE_NUMBER and ADMIN_WHATSAPP_RECIPIENTS (name:phone,…).
func NewNotifierFromEnv(stats *Stats) *Notifier {
	fromPhone := os.Getenv("TWILIO_PHONE_NUMBER")
	if fromPhone == "" {
		fromPhone = "whatsapp:+14155238886" // Twilio sandbox number
	}

	return &Notifier{
		accountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		authToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		fromPhone:   fromPhone,
		recipients:  parseRecipients(os.Getenv("ADMIN_WHATSAPP_RECIPIENTS")),
		stats:       stats,
		client:      &http.Client{Timeout: 15 * time.Second},
		baseURL:     fmt.Sprintf(twilioMessagesURL, os.Getenv("TWILIO_ACCOUNT_SID")),
		adminDelay:  time.Second,
		clientDelay: 2 * time.Second,
	}
}

// parseRecipients parses "nadia:whatsapp:+212654497354,ahmed:whatsapp:+212600623630".
func parseRecipients(raw string) []Recipient {
	recipients := []Recipient{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, phone, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		recipients = append(recipients, Recipient{Name: name, Phone: phone})
	}
	return recipients
}

// SendBookingNotification fans a new booking out to the admin numbers in
// order, then confirms to the client if at least one admin got the message.
// Everything here is best effort; the booking is already persisted.
func (n *Notifier) SendBookingNotification(ctx context.Context, booking models.Booking, activityTitle string) error {
	n.stats.TrackBookingSubmission()

	message := FormatBookingMessage(booking, activityTitle)

	if n.accountSID == "" || n.authToken == "" {
		log.Println("⚠️ Twilio credentials not found. WhatsApp notifications disabled.")
		log.Println("Would have sent:\n" + message)
		return nil
	}

	anySuccess := false
	for i, recipient := range n.recipients {
		if err := n.sendMessage(ctx, recipient.Phone, message); err != nil {
			n.stats.TrackMessageFailure(recipient.Name)
			log.Printf("❌ WhatsApp to %s failed: %v", recipient.Name, err)
		} else {
			n.stats.TrackMessageSuccess(recipient.Name)
			log.Printf("✅ WhatsApp sent to %s", recipient.Name)
			anySuccess = true
		}

		if i < len(n.recipients)-1 {
			select {
			case <-time.After(n.adminDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if anySuccess {
		select {
		case <-time.After(n.clientDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if err := n.sendClientConfirmation(ctx, booking, activityTitle); err != nil {
			log.Println("❌ WhatsApp confirmation to client failed:", err)
		} else {
			log.Println("✅ WhatsApp confirmation sent to client")
		}
	}

	return nil
}

func (n *Notifier) sendClientConfirmation(ctx context.Context, booking models.Booking, activityTitle string) error {
	to := booking.Phone
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	body := fmt.Sprintf(
		"✅ Hello %s, your booking for %s on %s was received!\nWe will contact you shortly to confirm all details.",
		booking.Name, activityTitle, booking.Date,
	)
	return n.sendMessage(ctx, to, body)
}

func (n *Notifier) sendMessage(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("From", n.fromPhone)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(n.accountSID, n.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// FormatBookingMessage renders the admin-facing WhatsApp text.
func FormatBookingMessage(booking models.Booking, activityTitle string) string {
	notes := "No notes provided."
	if booking.Notes != nil && *booking.Notes != "" {
		notes = *booking.Notes
	}

	return fmt.Sprintf(`📢 *New Booking Received*

👤 Name: %s
📞 Phone: %s
🎯 Activity: %s
📅 Date: %s
👥 People: %d
📝 Notes: %s`,
		booking.Name, booking.Phone, activityTitle, booking.Date, booking.People, notes)
}
