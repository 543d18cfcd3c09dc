package providertoken

import (
	"time"
)

// ProviderToken stores the OAuth credentials for the mailbox provider.
// The refresh token is issued once; the access token is renewed from it
// whenever it expires.
type ProviderToken struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RefreshToken string     `gorm:"type:varchar(500);not null;uniqueIndex" json:"-"`
	AccessToken  string     `gorm:"type:text" json:"-"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Scope        string     `gorm:"type:varchar(500)" json:"scope"`
	APIDomain    string     `gorm:"type:varchar(255);default:'https://www.zohoapis.com'" json:"api_domain"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsAccessTokenValid checks if the cached access token can still be used
func (t *ProviderToken) IsAccessTokenValid() bool {
	if t.AccessToken == "" || t.ExpiresAt == nil {
		return false
	}
	return time.Now().Before(*t.ExpiresAt)
}

// NeedsRefresh checks if the access token must be renewed before use
func (t *ProviderToken) NeedsRefresh() bool {
	return !t.IsAccessTokenValid()
}
