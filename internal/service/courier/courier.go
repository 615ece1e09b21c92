// Package courier implements the admin-facing courier CRUD.
package courier

import (
	"context"
	"strings"
	"time"

	"market-dispatch/internal/apperr"
	"market-dispatch/internal/domain"
)

// Service validates courier input and orchestrates repository calls.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
}

func NewService(r courierRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create persists a new courier and returns its generated ID. Fresh
// profiles start unverified regardless of the request payload.
func (s *Service) Create(ctx context.Context, c *domain.Courier) (int64, error) {
	if err := validateCreate(c); err != nil {
		return 0, err
	}
	c.Verified = false

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, c)
}

// Get retrieves a courier by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound
	}
	return c, nil
}

// List returns couriers with optional pagination.
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Courier, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// UpdatePartial applies the non-nil fields of u. Verification flips
// arrive through here too (an admin marking a courier verified).
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound
	}
	return true, nil
}

// validateCreate checks a new profile, filling in the default status
// and transport when the caller omitted them.
func validateCreate(c *domain.Courier) error {
	switch {
	case c == nil:
		return apperr.Invalid
	case strings.TrimSpace(c.Name) == "":
		return apperr.Invalid
	case !domain.ValidatePhone(c.Phone):
		return apperr.Invalid
	}

	if c.Status == "" {
		c.Status = domain.CourierOffline
	}
	if c.TransportType == "" {
		c.TransportType = domain.TransportTypeFoot
	}
	if !c.Status.Valid() || !c.TransportType.Valid() {
		return apperr.Invalid
	}
	return nil
}

func validateUpdate(u *domain.PartialCourierUpdate) error {
	if u.ID <= 0 {
		return apperr.Invalid
	}
	empty := u.Name == nil && u.Phone == nil && u.Status == nil &&
		u.TransportType == nil && u.Verified == nil
	if empty {
		return apperr.Invalid
	}

	switch {
	case u.Name != nil && strings.TrimSpace(*u.Name) == "":
		return apperr.Invalid
	case u.Phone != nil && !domain.ValidatePhone(*u.Phone):
		return apperr.Invalid
	case u.Status != nil && !u.Status.Valid():
		return apperr.Invalid
	case u.TransportType != nil && !u.TransportType.Valid():
		return apperr.Invalid
	}
	return nil
}
