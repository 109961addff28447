package crm

import (
	"context"
	"os"

	"github.com/hamzaRio/MarrakechTours/src/models"
)

// Zoho is configured via ZOHO_ACCESS_TOKEN. The agency has not migrated
// off HubSpot yet, so the sync itself is a stub that reports as such.
type Zoho struct {
	accessToken string
}

func NewZohoFromEnv() *Zoho {
	return &Zoho{accessToken: os.Getenv("ZOHO_ACCESS_TOKEN")}
}

func (z *Zoho) IsConfigured() bool {
	return z.accessToken != ""
}

func (z *Zoho) Provider() string {
	return "zoho"
}

func (z *Zoho) SyncContactWithBooking(_ context.Context, _ models.Booking, _ string) SyncResult {
	if !z.IsConfigured() {
		return SyncResult{Success: false, Message: "Zoho access token not configured"}
	}
	return SyncResult{Success: false, Message: "Zoho integration not implemented yet"}
}
