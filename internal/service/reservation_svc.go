package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/repository"
	"github.com/usermenei/E-ses/pkg/mq"
)

// MaxReservationsPerUser caps how many reservations a non-admin user may
// hold at once, counted over every status.
const MaxReservationsPerUser = 3

// ReservationPatch carries the updatable fields of a reservation. There is
// deliberately no owner field: ownership is immutable and anything a client
// sends for it is dropped before we get here.
type ReservationPatch struct {
	ApptDate         *time.Time
	CoworkingSpaceID *string
	Status           *domain.ReservationStatus
}

// userLockShards bounds the lock set used to serialize quota checks; a hash
// collision only over-serializes two unrelated users, never under-locks one.
const userLockShards = 64

type ReservationSvc struct {
	resv   *repository.ReservationRepo
	spaces *repository.SpaceRepo
	pub    *mq.Publisher

	// serializes the quota check-then-insert per user within this process
	userLocks [userLockShards]sync.Mutex
}

func NewReservationSvc(r *repository.ReservationRepo, spaces *repository.SpaceRepo, pub *mq.Publisher) *ReservationSvc {
	return &ReservationSvc{resv: r, spaces: spaces, pub: pub}
}

func (s *ReservationSvc) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &s.userLocks[h.Sum32()%userLockShards]
}

// List returns the actor's own reservations, or for admins all of them,
// optionally scoped to one space.
func (s *ReservationSvc) List(ctx context.Context, actor domain.Actor, spaceID string) ([]domain.Reservation, error) {
	if !actor.IsAdmin() {
		return s.resv.List(ctx, actor.ID, "")
	}
	return s.resv.List(ctx, "", spaceID)
}

func (s *ReservationSvc) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Reservation, error) {
	resv, err := s.resv.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(resv.UserID) {
		return nil, domain.ErrForbidden
	}
	return resv, nil
}

func (s *ReservationSvc) Create(ctx context.Context, actor domain.Actor, spaceID string, apptDate time.Time) (*domain.Reservation, error) {
	if _, err := s.spaces.ByID(ctx, spaceID); err != nil {
		return nil, fmt.Errorf("coworking space: %w", err)
	}

	resv := &domain.Reservation{
		ApptDate:         apptDate,
		UserID:           actor.ID,
		CoworkingSpaceID: spaceID,
		Status:           domain.StatusPending,
	}
	maxHeld := MaxReservationsPerUser
	if actor.IsAdmin() {
		maxHeld = 0
	} else {
		l := s.userLock(actor.ID)
		l.Lock()
		defer l.Unlock()
	}
	if err := s.resv.CreateWithQuota(ctx, resv, maxHeld); err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, "reservation.created", map[string]any{
		"reservation_id": resv.ID, "user_id": resv.UserID,
		"coworking_space_id": resv.CoworkingSpaceID, "appt_date": resv.ApptDate.Unix(),
	})
	return resv, nil
}

func (s *ReservationSvc) Update(ctx context.Context, actor domain.Actor, id string, patch ReservationPatch) (*domain.Reservation, error) {
	resv, err := s.resv.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(resv.UserID) {
		return nil, domain.ErrForbidden
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.StatusSuccess:
			// only Confirm moves a reservation to success
			return nil, fmt.Errorf("%w: cannot manually set reservation to success", domain.ErrInvalidTransition)
		case domain.StatusPending, domain.StatusCancelled:
			resv.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *patch.Status)
		}
	}
	if patch.CoworkingSpaceID != nil && *patch.CoworkingSpaceID != resv.CoworkingSpaceID {
		if _, err := s.spaces.ByID(ctx, *patch.CoworkingSpaceID); err != nil {
			return nil, fmt.Errorf("coworking space: %w", err)
		}
		resv.CoworkingSpaceID = *patch.CoworkingSpaceID
	}
	if patch.ApptDate != nil {
		resv.ApptDate = *patch.ApptDate
	}
	if err := s.resv.Update(ctx, resv); err != nil {
		return nil, err
	}
	return s.resv.ByID(ctx, id)
}

func (s *ReservationSvc) Delete(ctx context.Context, actor domain.Actor, id string) error {
	resv, err := s.resv.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(resv.UserID) {
		return domain.ErrForbidden
	}
	if err := s.resv.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.pub.PublishJSON(ctx, "reservation.cancelled", map[string]any{"reservation_id": id})
	return nil
}

// Confirm is admin-only; it moves pending -> success and credits the owner
// one entry, atomically.
func (s *ReservationSvc) Confirm(ctx context.Context, actor domain.Actor, id string) (*domain.Reservation, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	resv, err := s.resv.Confirm(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, "reservation.confirmed", map[string]any{
		"reservation_id": resv.ID, "user_id": resv.UserID,
	})
	return resv, nil
}
