package category

import (
	"strings"
	"time"
)

// Category is a locally mirrored ITSM category used for ticket
// classification. The mirror is write-owned by the sync operation and
// read-only everywhere else.
type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GlpiID    int       `gorm:"not null;uniqueIndex" json:"glpi_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	FullPath  string    `gorm:"type:varchar(1024)" json:"full_path"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PathParts splits the hierarchical path into its trimmed segments
func (c *Category) PathParts() []string {
	return SplitPath(c.FullPath)
}

// SplitPath splits a '>'-delimited hierarchical path into trimmed parts
func SplitPath(path string) []string {
	raw := strings.Split(path, ">")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// JoinPath renders path parts back into the canonical "A > B > C" form
func JoinPath(parts []string) string {
	return strings.Join(parts, " > ")
}
