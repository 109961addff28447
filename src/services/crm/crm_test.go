package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleBooking() models.Booking {
	return models.Booking{
		ID:         primitive.NewObjectID(),
		Name:       "Fatima Zahra",
		Phone:      "+212600000000",
		ActivityID: primitive.NewObjectID(),
		Date:       "2026-06-01",
		People:     3,
		Status:     models.StatusPending,
	}
}

func TestTestConnection(t *testing.T) {
	t.Run("NoKeys", func(t *testing.T) {
		t.Setenv("HUBSPOT_API_KEY", "")
		t.Setenv("ZOHO_ACCESS_TOKEN", "")

		result := TestConnection()
		assert.False(t, result.Success)
		assert.Equal(t, "No CRM API keys found in environment variables", result.Message)
	})

	t.Run("ValidHubSpotKey", func(t *testing.T) {
		t.Setenv("HUBSPOT_API_KEY", "pat-na1-0123456789abcdef")
		t.Setenv("ZOHO_ACCESS_TOKEN", "")

		result := TestConnection()
		assert.True(t, result.Success)
		assert.Equal(t, "Successfully connected to HubSpot CRM", result.Message)
	})

	t.Run("ShortHubSpotKey", func(t *testing.T) {
		t.Setenv("HUBSPOT_API_KEY", "short")
		t.Setenv("ZOHO_ACCESS_TOKEN", "")

		result := TestConnection()
		assert.False(t, result.Success)
	})

	t.Run("ZohoFallback", func(t *testing.T) {
		t.Setenv("HUBSPOT_API_KEY", "")
		t.Setenv("ZOHO_ACCESS_TOKEN", "zoho-token-0123456789")

		result := TestConnection()
		assert.True(t, result.Success)
		assert.Equal(t, "Successfully connected to Zoho CRM", result.Message)
	})
}

func TestStatusTracker(t *testing.T) {
	t.Run("Disconnected", func(t *testing.T) {
		t.Setenv("HUBSPOT_API_KEY", "")
		t.Setenv("ZOHO_ACCESS_TOKEN", "")

		status := NewStatusTracker().GetStatus()
		assert.False(t, status.Connected)
		assert.NotEmpty(t, status.Error)
	})

	t.Run("ConnectedWithSyncs", func(t *testing.T) {
		t.Setenv("HUBSPOT_API_KEY", "pat-na1-0123456789abcdef")
		t.Setenv("ZOHO_ACCESS_TOKEN", "")

		tracker := NewStatusTracker()
		tracker.RecordSuccessfulSync()
		tracker.RecordSuccessfulSync()

		status := tracker.GetStatus()
		assert.True(t, status.Connected)
		assert.Equal(t, "hubspot", status.Provider)
		require.NotNil(t, status.TotalContacts)
		assert.Equal(t, 2, *status.TotalContacts)
		require.NotNil(t, status.LastSync)
		_, err := time.Parse(time.RFC3339, *status.LastSync)
		assert.NoError(t, err)
	})
}

func TestZohoIsAStub(t *testing.T) {
	zoho := &Zoho{accessToken: "zoho-token-0123456789"}
	result := zoho.SyncContactWithBooking(context.Background(), sampleBooking(), "Agafay Combo")
	assert.False(t, result.Success)
	assert.Equal(t, "Zoho integration not implemented yet", result.Message)
}

func TestHubSpotCreatesNewContact(t *testing.T) {
	tracker := NewStatusTracker()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/crm/v3/objects/contacts/search":
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		case "/crm/v3/objects/contacts":
			assert.Equal(t, http.MethodPost, r.Method)
			var body struct {
				Properties map[string]string `json:"properties"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Fatima", body.Properties["firstname"])
			assert.Equal(t, "Zahra", body.Properties["lastname"])
			assert.Equal(t, "+212600000000", body.Properties["phone"])
			json.NewEncoder(w).Encode(map[string]string{"id": "hs-777"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	h := &HubSpot{apiKey: "test-key", baseURL: server.URL, client: server.Client(), tracker: tracker}
	result := h.SyncContactWithBooking(context.Background(), sampleBooking(), "Agafay Combo")

	assert.True(t, result.Success)
	assert.Equal(t, "hs-777", result.CRMID)
	assert.Equal(t, "Contact created in HubSpot", result.Message)
	assert.Equal(t, 1, tracker.contactsSynced)
}

func TestHubSpotUpdatesExistingContact(t *testing.T) {
	tracker := NewStatusTracker()
	var noteAdded bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/crm/v3/objects/contacts/search":
			json.NewEncoder(w).Encode(map[string]any{"results": []map[string]string{{"id": "hs-42"}}})
		case r.URL.Path == "/crm/v3/objects/contacts/hs-42":
			assert.Equal(t, http.MethodPatch, r.Method)
			json.NewEncoder(w).Encode(map[string]string{"id": "hs-42"})
		case r.URL.Path == "/crm/v3/objects/notes":
			noteAdded = true
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	h := &HubSpot{apiKey: "test-key", baseURL: server.URL, client: server.Client(), tracker: tracker}
	result := h.SyncContactWithBooking(context.Background(), sampleBooking(), "Agafay Combo")

	assert.True(t, result.Success)
	assert.Equal(t, "hs-42", result.CRMID)
	assert.Equal(t, "Contact updated in HubSpot", result.Message)
	assert.True(t, noteAdded)
}

func TestHubSpotReportsAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"expired key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	h := &HubSpot{apiKey: "test-key", baseURL: server.URL, client: server.Client(), tracker: NewStatusTracker()}
	result := h.SyncContactWithBooking(context.Background(), sampleBooking(), "Agafay Combo")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "HubSpot lookup failed")
}
