package planet

import "context"

// SiteRepository defines persistence operations for resource sites
type SiteRepository interface {
	// FindByID returns shared.ErrSiteNotFound (wrapped) when the site does not exist
	FindByID(ctx context.Context, id uint32) (*ResourceSite, error)
	// Add returns shared.ErrAlreadyExists (wrapped) when the id is taken
	Add(ctx context.Context, site *ResourceSite) error
}
