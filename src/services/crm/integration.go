package crm

import (
	"context"
	"os"

	"github.com/hamzaRio/MarrakechTours/src/models"
)

// SyncResult reports one contact-sync attempt. Failures are results, not
// errors: CRM sync is best effort and must never fail a booking.
type SyncResult struct {
	Success bool   `json:"success"`
	CRMID   string `json:"crmId,omitempty"`
	Message string `json:"message,omitempty"`
}

// Integration is a CRM provider able to upsert a contact from a booking.
type Integration interface {
	SyncContactWithBooking(ctx context.Context, booking models.Booking, activityTitle string) SyncResult
	IsConfigured() bool
	Provider() string
}

// GetIntegration picks the configured provider, HubSpot first, nil when
// nothing is configured.
func GetIntegration(tracker *StatusTracker) Integration {
	if hubspot := NewHubSpotFromEnv(tracker); hubspot.IsConfigured() {
		return hubspot
	}
	if zoho := NewZohoFromEnv(); zoho.IsConfigured() {
		return zoho
	}
	return nil
}

// IsConfigured reports whether any CRM provider has credentials.
func IsConfigured() bool {
	return os.Getenv("HUBSPOT_API_KEY") != "" || os.Getenv("ZOHO_ACCESS_TOKEN") != ""
}

// SyncBookingWithCRM routes a booking to the configured provider and
// records successful syncs in the status tracker.
func SyncBookingWithCRM(ctx context.Context, tracker *StatusTracker, booking models.Booking, activityTitle string) SyncResult {
	integration := GetIntegration(tracker)
	if integration == nil {
		return SyncResult{Success: false, Message: "No CRM integration configured"}
	}
	return integration.SyncContactWithBooking(ctx, booking, activityTitle)
}
