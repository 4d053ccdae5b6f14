package service

import (
	"context"
	"fmt"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/repository"
)

type SpaceSvc struct {
	spaces *repository.SpaceRepo
}

func NewSpaceSvc(r *repository.SpaceRepo) *SpaceSvc {
	return &SpaceSvc{spaces: r}
}

func (s *SpaceSvc) Create(ctx context.Context, sp *domain.CoworkingSpace) error {
	if err := validateSpace(sp); err != nil {
		return err
	}
	return s.spaces.Create(ctx, sp)
}

func (s *SpaceSvc) Get(ctx context.Context, id string) (*domain.CoworkingSpace, error) {
	return s.spaces.ByIDWithReservations(ctx, id)
}

func (s *SpaceSvc) List(ctx context.Context, q repository.SpaceQuery) ([]domain.CoworkingSpace, int64, error) {
	return s.spaces.List(ctx, q)
}

func (s *SpaceSvc) Update(ctx context.Context, sp *domain.CoworkingSpace) error {
	if err := validateSpaceConstraints(sp); err != nil {
		return err
	}
	if _, err := s.spaces.ByID(ctx, sp.ID); err != nil {
		return err
	}
	return s.spaces.Update(ctx, sp)
}

func (s *SpaceSvc) Delete(ctx context.Context, id string) error {
	return s.spaces.Delete(ctx, id)
}

func validateSpace(sp *domain.CoworkingSpace) error {
	required := map[string]string{
		"name":       sp.Name,
		"address":    sp.Address,
		"district":   sp.District,
		"province":   sp.Province,
		"postalcode": sp.Postalcode,
		"tel":        sp.Tel,
		"region":     sp.Region,
		"openTime":   sp.OpenTime,
		"closeTime":  sp.CloseTime,
	}
	for field, v := range required {
		if v == "" {
			return fmt.Errorf("%w: please add %s", domain.ErrValidation, field)
		}
	}
	return validateSpaceConstraints(sp)
}

// validateSpaceConstraints checks the field constraints that apply on both
// create and update; updates may omit fields, so required-ness stays out.
func validateSpaceConstraints(sp *domain.CoworkingSpace) error {
	if len(sp.Name) > 100 {
		return fmt.Errorf("%w: name cannot be more than 100 characters", domain.ErrValidation)
	}
	return nil
}
