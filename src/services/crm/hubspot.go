package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"
)

const hubspotAPIBaseURL = "https://api.hubapi.com"

// HubSpot upserts booking contacts through HubSpot's CRM v3 REST API.
type HubSpot struct {
	apiKey  string
	baseURL string
	client  *http.Client
	tracker *StatusTracker
}

func NewHubSpotFromEnv(tracker *StatusTracker) *HubSpot {
	return &HubSpot{
		apiKey:  os.Getenv("HUBSPOT_API_KEY"),
		baseURL: hubspotAPIBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		tracker: tracker,
	}
}

func (h *HubSpot) IsConfigured() bool {
	return h.apiKey != ""
}

func (h *HubSpot) Provider() string {
	return "hubspot"
}

// SyncContactWithBooking finds the contact by phone and updates it, or
// creates a fresh one; existing contacts also get the booking attached as
// a note.
func (h *HubSpot) SyncContactWithBooking(ctx context.Context, booking models.Booking, activityTitle string) SyncResult {
	if !h.IsConfigured() {
		return SyncResult{Success: false, Message: "HubSpot API key not configured"}
	}

	firstname, lastname, _ := strings.Cut(booking.Name, " ")
	notes := ""
	if booking.Notes != nil {
		notes = *booking.Notes
	}

	properties := map[string]string{
		"firstname":           firstname,
		"lastname":            lastname,
		"phone":               booking.Phone,
		"booking_date":        booking.Date,
		"booking_activity":    activityTitle,
		"booking_people":      fmt.Sprintf("%d", booking.People),
		"booking_notes":       notes,
		"booking_external_id": booking.ID.Hex(),
		"lifecycle_stage":     "customer",
	}

	existingID, err := h.findContactByPhone(ctx, booking.Phone)
	if err != nil {
		return SyncResult{Success: false, Message: fmt.Sprintf("HubSpot lookup failed: %v", err)}
	}

	if existingID != "" {
		if _, err := h.updateContact(ctx, existingID, properties); err != nil {
			return SyncResult{Success: false, Message: fmt.Sprintf("HubSpot update failed: %v", err)}
		}
		note := fmt.Sprintf("New booking: %s on %s for %d people", activityTitle, booking.Date, booking.People)
		if err := h.addNote(ctx, existingID, note); err != nil {
			return SyncResult{Success: false, Message: fmt.Sprintf("HubSpot note failed: %v", err)}
		}
		h.tracker.RecordSuccessfulSync()
		return SyncResult{Success: true, CRMID: existingID, Message: "Contact updated in HubSpot"}
	}

	createdID, err := h.createContact(ctx, properties)
	if err != nil {
		return SyncResult{Success: false, Message: fmt.Sprintf("HubSpot create failed: %v", err)}
	}
	h.tracker.RecordSuccessfulSync()
	return SyncResult{Success: true, CRMID: createdID, Message: "Contact created in HubSpot"}
}

func (h *HubSpot) findContactByPhone(ctx context.Context, phone string) (string, error) {
	body := map[string]any{
		"filterGroups": []map[string]any{{
			"filters": []map[string]any{{
				"propertyName": "phone",
				"operator":     "EQ",
				"value":        phone,
			}},
		}},
	}

	var result struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := h.post(ctx, "/crm/v3/objects/contacts/search", body, &result); err != nil {
		return "", err
	}
	if len(result.Results) == 0 {
		return "", nil
	}
	return result.Results[0].ID, nil
}

func (h *HubSpot) createContact(ctx context.Context, properties map[string]string) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	err := h.post(ctx, "/crm/v3/objects/contacts", map[string]any{"properties": properties}, &result)
	return result.ID, err
}

func (h *HubSpot) updateContact(ctx context.Context, contactID string, properties map[string]string) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	err := h.do(ctx, http.MethodPatch, "/crm/v3/objects/contacts/"+contactID, map[string]any{"properties": properties}, &result)
	return result.ID, err
}

func (h *HubSpot) addNote(ctx context.Context, contactID, content string) error {
	body := map[string]any{
		"properties": map[string]any{
			"hs_note_body": content,
			"hs_timestamp": time.Now().UnixMilli(),
		},
		"associations": []map[string]any{{
			"to": map[string]any{"id": contactID},
			"types": []map[string]any{{
				"associationCategory": "HUBSPOT_DEFINED",
				"associationTypeId":   202,
			}},
		}},
	}
	return h.post(ctx, "/crm/v3/objects/notes", body, nil)
}

func (h *HubSpot) post(ctx context.Context, path string, body any, out any) error {
	return h.do(ctx, http.MethodPost, path, body, out)
}

func (h *HubSpot) do(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("hubspot returned %d: %s", resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
