package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Verifier consults an external ticket-validation service when one is
// configured. The result can override the derived pseudo-id; its absence or
// failure never blocks an auth response (fail open).
type Verifier struct {
	baseURL    string
	httpClient *http.Client
}

func NewVerifier(baseURL string) *Verifier {
	return &Verifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Enabled reports whether a verification endpoint is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && v.baseURL != ""
}

// VerifiedIdentity is the verifier's verdict on a ticket.
type VerifiedIdentity struct {
	Valid    bool   `json:"valid"`
	PlayerID string `json:"playerId"`
}

// VerifyTicket posts the ticket to the configured endpoint. Any transport or
// decode failure is returned as an error for the caller to log and ignore.
func (v *Verifier) VerifyTicket(ctx context.Context, ticket string) (*VerifiedIdentity, error) {
	body, err := json.Marshal(map[string]string{"ticket": ticket})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verifier error: %s", resp.Status)
	}

	var verdict VerifiedIdentity
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}
