package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
)

func TestMirror_ForwardDeliversEvent(t *testing.T) {
	t.Parallel()

	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	mirror, err := NewMirror(server.URL)
	if err != nil {
		t.Fatalf("NewMirror() error = %v", err)
	}

	event := Event{
		ReminderID:  "r-1",
		Comment:     "Claim: A-17",
		Phone:       "89991234567",
		NextAttempt: "10:21",
		Kind:        "TRACKING",
	}
	if err := mirror.Forward(context.Background(), event); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	if received != event {
		t.Fatalf("received = %+v, want %+v", received, event)
	}
}

func TestMirror_ForwardClassifiesStatuses(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		status        int
		wantErr       bool
		wantTransient bool
	}{
		{name: "accepted", status: http.StatusAccepted, wantErr: false},
		{name: "bad request is permanent", status: http.StatusBadRequest, wantErr: true, wantTransient: false},
		{name: "too many requests is transient", status: http.StatusTooManyRequests, wantErr: true, wantTransient: true},
		{name: "server error is transient", status: http.StatusBadGateway, wantErr: true, wantTransient: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			t.Cleanup(server.Close)

			mirror, err := NewMirrorWithClient(server.URL, resty.New())
			if err != nil {
				t.Fatalf("NewMirrorWithClient() error = %v", err)
			}

			err = mirror.Forward(context.Background(), Event{ReminderID: "r-1"})
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := IsTransient(err); got != tc.wantTransient {
				t.Fatalf("IsTransient() = %v, want %v", got, tc.wantTransient)
			}
		})
	}
}

func TestNewMirror_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewMirror(""); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
	if _, err := NewMirror("::bad::"); err == nil {
		t.Fatal("expected error for malformed endpoint")
	}
	if _, err := NewMirrorWithClient("https://mirror.example.com", nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}
