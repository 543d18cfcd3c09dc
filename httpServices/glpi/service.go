package glpi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"helpdesk-backend/apperrors"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/category"
)

const pageSize = 50

// Client talks to the ITSM legacy REST API to read the category tree.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appToken   string
	userToken  string
}

// CategoryEntry is one ITSM category flattened out of the remote tree.
type CategoryEntry struct {
	GlpiID     int
	Name       string
	FullPath   string
	Parts      []string
	ParentPath string
}

type initSessionResponse struct {
	SessionToken string `json:"session_token"`
}

type rawCategory struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CompleteName string `json:"completename"`
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   normalizeBaseURL(os.Getenv("GLPI_LEGACY_API_URL")),
		appToken:  os.Getenv("GLPI_APP_TOKEN"),
		userToken: os.Getenv("GLPI_USER_TOKEN"),
	}
}

// normalizeBaseURL makes sure the configured URL points at the legacy REST
// endpoint regardless of how much of the path the operator typed.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimRight(raw, "/")
	if raw == "" {
		return raw
	}
	if !strings.HasSuffix(raw, "/apirest.php") {
		raw += "/apirest.php"
	}
	return raw
}

// InitSession opens an API session and returns the session token.
func (c *Client) InitSession() (string, error) {
	httpReq, err := http.NewRequest("GET", c.baseURL+"/initSession", nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("App-Token", c.appToken)
	httpReq.Header.Set("Authorization", "user_token "+c.userToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", apperrors.Upstream("service_unavailable", "ITSM API is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Upstream("session_error", fmt.Sprintf("ITSM API returned status %d on initSession", resp.StatusCode), nil)
	}

	var sessionResp initSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return "", apperrors.Upstream("session_error", "ITSM API returned an unreadable session response", err)
	}
	if sessionResp.SessionToken == "" {
		return "", apperrors.Upstream("session_error", "ITSM API returned an empty session token", nil)
	}
	return sessionResp.SessionToken, nil
}

// KillSession closes the API session. Failures are logged, not returned.
func (c *Client) KillSession(sessionToken string) {
	httpReq, err := http.NewRequest("GET", c.baseURL+"/killSession", nil)
	if err != nil {
		return
	}
	httpReq.Header.Set("App-Token", c.appToken)
	httpReq.Header.Set("Session-Token", sessionToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Failed to close ITSM session", err)
		return
	}
	resp.Body.Close()
}

// FetchCategories pages through the full ITILCategory listing and returns
// every category with its path split into segments. Entries are deduplicated
// by remote id.
func (c *Client) FetchCategories() ([]CategoryEntry, error) {
	sessionToken, err := c.InitSession()
	if err != nil {
		return nil, err
	}
	defer c.KillSession(sessionToken)

	seen := make(map[int]bool)
	var entries []CategoryEntry

	start := 0
	for {
		page, total, err := c.fetchCategoryPage(sessionToken, start)
		if err != nil {
			return nil, err
		}

		for _, raw := range page {
			if seen[raw.ID] {
				continue
			}
			seen[raw.ID] = true

			fullPath := raw.CompleteName
			if fullPath == "" {
				fullPath = raw.Name
			}
			parts := category.SplitPath(fullPath)
			if len(parts) == 0 {
				continue
			}

			entry := CategoryEntry{
				GlpiID:   raw.ID,
				Name:     parts[len(parts)-1],
				FullPath: category.JoinPath(parts),
				Parts:    parts,
			}
			if len(parts) > 1 {
				entry.ParentPath = category.JoinPath(parts[:len(parts)-1])
			}
			entries = append(entries, entry)
		}

		start += pageSize
		if len(page) == 0 || (total > 0 && start >= total) {
			break
		}
	}

	return entries, nil
}

func (c *Client) fetchCategoryPage(sessionToken string, start int) ([]rawCategory, int, error) {
	endpoint := fmt.Sprintf("%s/ITILCategory?range=%d-%d", c.baseURL, start, start+pageSize-1)
	httpReq, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("App-Token", c.appToken)
	httpReq.Header.Set("Session-Token", sessionToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, apperrors.Upstream("service_unavailable", "ITSM API is unreachable", err)
	}
	defer resp.Body.Close()

	// 206 means a partial range, 200 means the listing fit in one page.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, 0, apperrors.Upstream("fetch_error", fmt.Sprintf("ITSM API returned status %d listing categories", resp.StatusCode), nil)
	}

	var page []rawCategory
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, 0, apperrors.Upstream("fetch_error", "ITSM API returned an unreadable category page", err)
	}

	return page, parseTotal(resp.Header.Get("Content-Range")), nil
}

// parseTotal extracts the total count from a "start-end/total" range header.
func parseTotal(contentRange string) int {
	idx := strings.LastIndex(contentRange, "/")
	if idx < 0 {
		return 0
	}
	total, err := strconv.Atoi(contentRange[idx+1:])
	if err != nil {
		return 0
	}
	return total
}
