// Package wikidata ensures normalized citation identifiers exist as
// publication items in Wikidata.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Wikidata MediaWiki API endpoint.
	BaseURL = "https://www.wikidata.org/w/api.php"

	// DefaultEditInterval spaces out consecutive uploads. Accounts
	// without a bot flag are expected to stay well under one edit per
	// second.
	DefaultEditInterval = 3 * time.Second

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// externalIDProperties maps identifier types to the Wikidata external-id
// property their values are stored under.
var externalIDProperties = map[string]string{
	"doi":     "P356",
	"pmid":    "P698",
	"pmcid":   "P932",
	"arxiv":   "P818",
	"biorxiv": "P3951",
}

// Client is a rate-limited Wikidata API client. Login must be called
// before any method that edits.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	username   string
	password   string
	csrfToken  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom API endpoint (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client. The client should carry a
// cookie jar; MediaWiki sessions are cookie-based.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCredentials sets the login credentials, overriding the environment.
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithEditInterval overrides the spacing between consecutive uploads.
func WithEditInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewClient creates a Wikidata API client. Credentials default to the
// WIKIDATA_USERNAME and WIKIDATA_PASSWORD environment variables.
func NewClient(opts ...ClientOption) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout, Jar: jar},
		limiter:    rate.NewLimiter(rate.Every(DefaultEditInterval), 1),
		baseURL:    BaseURL,
		username:   os.Getenv("WIKIDATA_USERNAME"),
		password:   os.Getenv("WIKIDATA_PASSWORD"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates against the MediaWiki API and caches a CSRF token
// for subsequent edits.
func (c *Client) Login(ctx context.Context) error {
	if c.username == "" || c.password == "" {
		return fmt.Errorf("%w: WIKIDATA_USERNAME and WIKIDATA_PASSWORD are not set", ErrAuthError)
	}

	loginToken, err := c.fetchToken(ctx, "login")
	if err != nil {
		return fmt.Errorf("fetching login token: %w", err)
	}

	var payload struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	form := url.Values{
		"action":     {"login"},
		"lgname":     {c.username},
		"lgpassword": {c.password},
		"lgtoken":    {loginToken},
		"format":     {"json"},
	}
	if err := c.postForm(ctx, form, &payload); err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	if payload.Login.Result != "Success" {
		return fmt.Errorf("%w: login result %s (%s)", ErrAuthError, payload.Login.Result, payload.Login.Reason)
	}

	c.csrfToken, err = c.fetchToken(ctx, "csrf")
	if err != nil {
		return fmt.Errorf("fetching csrf token: %w", err)
	}
	return nil
}

// FindPublication searches for an existing item carrying the identifier as
// an external-id statement. Returns the item QID, or ErrNotFound.
func (c *Client) FindPublication(ctx context.Context, idType, identifier string) (string, error) {
	property, ok := externalIDProperties[idType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIDType, idType)
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {fmt.Sprintf("haswbstatement:%s=%s", property, identifier)},
		"srlimit":  {"1"},
		"format":   {"json"},
	}
	var payload struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return "", err
	}
	if len(payload.Query.Search) == 0 {
		return "", fmt.Errorf("%w: %s:%s", ErrNotFound, idType, identifier)
	}
	return payload.Query.Search[0].Title, nil
}

// CreatePublication creates a new item whose only statement is the
// external-id claim for the identifier. Requires a prior Login.
func (c *Client) CreatePublication(ctx context.Context, idType, identifier string) (string, error) {
	property, ok := externalIDProperties[idType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIDType, idType)
	}
	if c.csrfToken == "" {
		return "", fmt.Errorf("%w: not logged in", ErrAuthError)
	}

	claims := map[string]any{
		"claims": []any{
			map[string]any{
				"type": "statement",
				"rank": "normal",
				"mainsnak": map[string]any{
					"snaktype": "value",
					"property": property,
					"datavalue": map[string]any{
						"type":  "string",
						"value": identifier,
					},
				},
			},
		},
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encoding claims: %w", err)
	}

	var payload struct {
		Entity struct {
			ID string `json:"id"`
		} `json:"entity"`
	}
	form := url.Values{
		"action": {"wbeditentity"},
		"new":    {"item"},
		"data":   {string(data)},
		"token":  {c.csrfToken},
		"format": {"json"},
	}
	if err := c.postForm(ctx, form, &payload); err != nil {
		return "", err
	}
	if payload.Entity.ID == "" {
		return "", fmt.Errorf("%w: edit response has no entity id", ErrInvalidResponse)
	}
	return payload.Entity.ID, nil
}

// fetchToken retrieves a MediaWiki token of the given type ("login" or
// "csrf").
func (c *Client) fetchToken(ctx context.Context, tokenType string) (string, error) {
	params := url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {tokenType},
		"format": {"json"},
	}
	var payload struct {
		Query struct {
			Tokens map[string]string `json:"tokens"`
		} `json:"query"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return "", err
	}
	token := payload.Query.Tokens[tokenType+"token"]
	if token == "" {
		return "", fmt.Errorf("%w: no %s token in response", ErrInvalidResponse, tokenType)
	}
	return token, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling Wikidata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	// MediaWiki reports application errors in-band with status 200.
	var envelope struct {
		Error *struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if envelope.Error != nil {
		return &APIError{Code: envelope.Error.Code, Info: envelope.Error.Info}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
