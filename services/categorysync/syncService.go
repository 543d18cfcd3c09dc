package categorysync

import (
	"fmt"
	"sort"

	"helpdesk-backend/httpServices/glpi"
	"helpdesk-backend/logger"
	"helpdesk-backend/models/category"

	"gorm.io/gorm"
)

// CategorySource lists the categories as the ITSM currently knows them.
type CategorySource interface {
	FetchCategories() ([]glpi.CategoryEntry, error)
}

// Service keeps the local category mirror equal to the ITSM tree.
type Service struct {
	DB     *gorm.DB
	Source CategorySource
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:     db,
		Source: glpi.NewClient(),
	}
}

// Stats summarizes one sync run.
type Stats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Total   int `json:"total"`
}

// SyncFromAPI fetches the remote tree and reconciles the mirror: upserts by
// remote id, re-links parents by path and deletes rows the ITSM no longer
// has. Parents are processed before children so links always resolve.
func (s *Service) SyncFromAPI() (*Stats, error) {
	entries, err := s.Source.FetchCategories()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Parts) < len(entries[j].Parts)
	})

	stats := &Stats{}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		byPath := make(map[string]uint)
		remoteIDs := make([]int, 0, len(entries))

		// Pre-seed the path cache so parents already in the mirror resolve
		// even when the remote listing omits them.
		var existing []category.Category
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load category mirror: %w", err)
		}
		for i := range existing {
			byPath[existing[i].FullPath] = existing[i].ID
		}

		for _, entry := range entries {
			remoteIDs = append(remoteIDs, entry.GlpiID)

			var parentID *uint
			if entry.ParentPath != "" {
				if id, ok := byPath[entry.ParentPath]; ok {
					parentID = &id
				}
			}

			var row category.Category
			err := tx.Where("glpi_id = ?", entry.GlpiID).First(&row).Error
			switch {
			case err == gorm.ErrRecordNotFound:
				row = category.Category{
					GlpiID:   entry.GlpiID,
					Name:     entry.Name,
					FullPath: entry.FullPath,
					ParentID: parentID,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to create category %d: %w", entry.GlpiID, err)
				}
				stats.Created++
			case err != nil:
				return fmt.Errorf("failed to load category %d: %w", entry.GlpiID, err)
			default:
				if row.Name != entry.Name || row.FullPath != entry.FullPath || !equalParent(row.ParentID, parentID) {
					row.Name = entry.Name
					row.FullPath = entry.FullPath
					row.ParentID = parentID
					if err := tx.Save(&row).Error; err != nil {
						return fmt.Errorf("failed to update category %d: %w", entry.GlpiID, err)
					}
					stats.Updated++
				}
			}
			byPath[row.FullPath] = row.ID
		}

		// Rows the ITSM no longer lists are stale.
		if len(remoteIDs) > 0 {
			result := tx.Where("glpi_id NOT IN ?", remoteIDs).Delete(&category.Category{})
			if result.Error != nil {
				return fmt.Errorf("failed to delete stale categories: %w", result.Error)
			}
			stats.Deleted = int(result.RowsAffected)
		}

		var total int64
		if err := tx.Model(&category.Category{}).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count category mirror: %w", err)
		}
		stats.Total = int(total)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Category sync finished: %d created, %d updated, %d deleted, %d total",
		stats.Created, stats.Updated, stats.Deleted, stats.Total))
	return stats, nil
}

func equalParent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
