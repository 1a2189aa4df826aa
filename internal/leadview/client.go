package leadview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tharun-codes/wheelswebb/internal/models"
)

// Client fetches leads from a remote leads API over the same contract the
// dashboard consumes: GET /api/leads?userId=&role=[&viewUser=] and
// DELETE /api/leads/{loan_id}.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, token string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (c *Client) FetchLeads(ctx context.Context, vc ViewContext) ([]Lead, error) {
	q := url.Values{}
	q.Set("userId", vc.ActingUserID)
	if vc.Scope == ScopeAdminViewOther {
		q.Set("role", models.RoleAdmin)
		q.Set("viewUser", vc.ScopeTarget)
	} else {
		q.Set("role", vc.ActingRole)
	}

	body, status, err := c.get(ctx, "/api/leads?"+q.Encode())
	if err != nil {
		c.log.Error("leads fetch failed", slog.String("error", err.Error()))
		return []Lead{}, nil
	}
	if status < 200 || status >= 300 {
		c.log.Error("leads fetch failed", slog.Int("status", status))
		return []Lead{}, nil
	}

	var leads []Lead
	if err := json.Unmarshal(body, &leads); err != nil {
		// Anything that is not an array of leads counts as an empty set.
		c.log.Warn("leads response not an array", slog.String("error", err.Error()))
		return []Lead{}, nil
	}
	if leads == nil {
		leads = []Lead{}
	}
	return leads, nil
}

// FetchUsers lists all users for the filter dropdowns, with the same
// fail-soft behavior as FetchLeads.
func (c *Client) FetchUsers(ctx context.Context) ([]UserRef, error) {
	body, status, err := c.get(ctx, "/api/all-users")
	if err != nil {
		c.log.Error("users fetch failed", slog.String("error", err.Error()))
		return []UserRef{}, nil
	}
	if status < 200 || status >= 300 {
		c.log.Error("users fetch failed", slog.Int("status", status))
		return []UserRef{}, nil
	}

	var users []UserRef
	if err := json.Unmarshal(body, &users); err != nil {
		c.log.Warn("users response not an array", slog.String("error", err.Error()))
		return []UserRef{}, nil
	}
	if users == nil {
		users = []UserRef{}
	}
	return users, nil
}

func (c *Client) DeleteLead(ctx context.Context, loanID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/leads/"+url.PathEscape(loanID), nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("delete lead %s: upstream status %d", loanID, res.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	c.authorize(req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, err
	}
	return body, res.StatusCode, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
