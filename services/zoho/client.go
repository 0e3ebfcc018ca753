package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client talks to the Zoho CRM v3 API. Authentication is an OAuth
// refresh-token exchange; the short-lived access token is cached in memory and
// re-fetched once on a 401. The client is constructed explicitly and passed to
// the services that need it, so tests can substitute fakes.
type Client struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccountsURL  string

	HTTPClient *http.Client
	Logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
	apiDomain   string
}

// NewClient builds a CRM client for the EU data centre by default.
func NewClient(clientID, clientSecret, refreshToken, accountsURL string, logger *zap.Logger) *Client {
	if accountsURL == "" {
		accountsURL = "https://accounts.zoho.eu"
	}
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
		AccountsURL:  accountsURL,
		HTTPClient:   &http.Client{Timeout: 20 * time.Second},
		Logger:       logger,
	}
}

// RecordDetails identifies a record the CRM created or updated.
type RecordDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type mutationResponse struct {
	Data []struct {
		Code    string        `json:"code"`
		Status  string        `json:"status"`
		Message string        `json:"message"`
		Details RecordDetails `json:"details"`
	} `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	APIDomain   string `json:"api_domain"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

func (c *Client) refreshAccessToken(ctx context.Context) error {
	if c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "" {
		return fmt.Errorf("missing Zoho API credentials")
	}

	q := url.Values{}
	q.Set("refresh_token", c.RefreshToken)
	q.Set("client_id", c.ClientID)
	q.Set("client_secret", c.ClientSecret)
	q.Set("grant_type", "refresh_token")

	endpoint := fmt.Sprintf("%s/oauth/v2/token?%s", c.AccountsURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("zoho token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("zoho token response unreadable: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("failed to refresh Zoho access token: %s", tok.Error)
	}

	c.mu.Lock()
	c.accessToken = tok.AccessToken
	if tok.APIDomain != "" {
		c.apiDomain = tok.APIDomain
	}
	c.mu.Unlock()
	return nil
}

func (c *Client) token(ctx context.Context) (string, string, error) {
	c.mu.Lock()
	tok, domain := c.accessToken, c.apiDomain
	c.mu.Unlock()
	if tok != "" {
		return tok, domain, nil
	}
	if err := c.refreshAccessToken(ctx); err != nil {
		return "", "", err
	}
	c.mu.Lock()
	tok, domain = c.accessToken, c.apiDomain
	c.mu.Unlock()
	return tok, domain, nil
}

// request performs one CRM call, refreshing the token and retrying exactly
// once on 401. The raw response body is returned for the caller to decode.
func (c *Client) request(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	tok, domain, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if domain == "" {
		domain = "https://www.zohoapis.eu"
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("zoho payload marshal failed: %w", err)
		}
	}

	do := func(token string) (*http.Response, error) {
		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/crm/v3/%s", domain, endpoint), rdr)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
		req.Header.Set("Content-Type", "application/json")
		return c.HTTPClient.Do(req)
	}

	resp, err := do(tok)
	if err != nil {
		return nil, fmt.Errorf("zoho request failed: %w", err)
	}

	// Access token may have expired mid-flight; refresh and retry once.
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.refreshAccessToken(ctx); err != nil {
			return nil, err
		}
		c.mu.Lock()
		tok = c.accessToken
		c.mu.Unlock()
		resp, err = do(tok)
		if err != nil {
			return nil, fmt.Errorf("zoho request failed after token refresh: %w", err)
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zoho response unreadable: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("zoho API error (%d): %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

// CreateRecord inserts one record into the named module and returns its
// identity. Records carry their Zoho field names via json tags.
func (c *Client) CreateRecord(ctx context.Context, module string, record any) (RecordDetails, error) {
	raw, err := c.request(ctx, http.MethodPost, module, map[string]any{"data": []any{record}})
	if err != nil {
		return RecordDetails{}, err
	}
	var out mutationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return RecordDetails{}, fmt.Errorf("zoho create response undecodable: %w", err)
	}
	if len(out.Data) == 0 || out.Data[0].Details.ID == "" {
		return RecordDetails{}, fmt.Errorf("zoho create in %s returned no record id", module)
	}
	return out.Data[0].Details, nil
}

// UpdateRecord applies the given fields to an existing record.
func (c *Client) UpdateRecord(ctx context.Context, module, id string, record any) error {
	_, err := c.request(ctx, http.MethodPut, fmt.Sprintf("%s/%s", module, id), map[string]any{"data": []any{record}})
	return err
}

// SearchRecords runs a criteria search and decodes the matching records into
// out, which must be a pointer to a slice of the module's record type.
// Zoho answers an empty result set with 204 and no body; that decodes to an
// empty slice here.
func (c *Client) SearchRecords(ctx context.Context, module, criteria string, out any) error {
	endpoint := fmt.Sprintf("%s/search?criteria=%s", module, url.QueryEscape(criteria))
	raw, err := c.request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("zoho search response undecodable: %w", err)
	}
	if envelope.Data == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("zoho search records undecodable: %w", err)
	}
	return nil
}

// API is the record-level surface of the CRM client. The specialized
// operations in this package are built on it, and tests swap it for a fake.
type API interface {
	CreateRecord(ctx context.Context, module string, record any) (RecordDetails, error)
	UpdateRecord(ctx context.Context, module, id string, record any) error
	SearchRecords(ctx context.Context, module, criteria string, out any) error
}

var _ API = (*Client)(nil)
