package branch

import (
	"context"
	"time"

	"github.com/hadirly/attendance-backend-go/internal/domain/geofence"
)

// Branch is a workplace location with a permanent circular geofence.
type Branch struct {
	ID           string
	CompanyID    string
	Name         string
	Address      *string
	Timezone     string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Geofence returns the branch's permanent perimeter.
func (b *Branch) Geofence() geofence.Spec {
	return geofence.Spec{
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		RadiusMeters: b.RadiusMeters,
		Label:        b.Name,
	}
}

type BranchRepository interface {
	Create(ctx context.Context, b Branch) (Branch, error)
	GetByID(ctx context.Context, id string, companyID string) (Branch, error)
	List(ctx context.Context, companyID string) ([]Branch, error)
	Update(ctx context.Context, b Branch) (Branch, error)
}
