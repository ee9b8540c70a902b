package vehicleRepo

import (
	"context"
	"time"

	"conjunto/models"
)

// SessionRepository persists visitor vehicle sessions. Find methods that miss
// return (nil, nil) rather than an error; the service layer decides how a
// missing session is reported.
type SessionRepository interface {
	Create(ctx context.Context, s *models.VisitorSession) error
	Update(ctx context.Context, s *models.VisitorSession) error
	FindByID(ctx context.Context, id string) (*models.VisitorSession, error)
	FindActiveByPlate(ctx context.Context, plate string) (*models.VisitorSession, error)
	FindAll(ctx context.Context) ([]models.VisitorSession, error)
	FindActive(ctx context.Context) ([]models.VisitorSession, error)
	FindByEntryRange(ctx context.Context, from, to time.Time) ([]models.VisitorSession, error)
}
