package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usermenei/E-ses/internal/domain"
)

// spaceProjection is what reservation listings expose of the target space.
const spaceProjection = "id, name, address, tel, open_time, close_time"

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Reservation{})
}

// CreateWithQuota inserts the reservation, enforcing maxHeld per owning user
// when maxHeld > 0. The count and the insert run in one transaction; every
// reservation counts against the quota regardless of status.
func (r *ReservationRepo) CreateWithQuota(ctx context.Context, resv *domain.Reservation, maxHeld int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if maxHeld > 0 {
			var held int64
			if err := tx.Model(&domain.Reservation{}).Where("user_id = ?", resv.UserID).Count(&held).Error; err != nil {
				return err
			}
			if held >= int64(maxHeld) {
				return domain.ErrQuotaExceeded
			}
		}
		if resv.ID == "" {
			resv.ID = uuid.NewString()
		}
		return tx.Create(resv).Error
	})
}

func (r *ReservationRepo) ByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var resv domain.Reservation
	err := r.db.WithContext(ctx).
		Preload("CoworkingSpace", func(db *gorm.DB) *gorm.DB { return db.Select(spaceProjection) }).
		First(&resv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &resv, nil
}

// List returns reservations filtered by owner and/or space; empty arguments
// mean no filter. Results carry the space projection.
func (r *ReservationRepo) List(ctx context.Context, userID, spaceID string) ([]domain.Reservation, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Reservation{}).
		Preload("CoworkingSpace", func(db *gorm.DB) *gorm.DB { return db.Select(spaceProjection) })
	if userID != "" {
		qb = qb.Where("user_id = ?", userID)
	}
	if spaceID != "" {
		qb = qb.Where("coworking_space_id = ?", spaceID)
	}
	var out []domain.Reservation
	if err := qb.Order("appt_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepo) Update(ctx context.Context, resv *domain.Reservation) error {
	return r.db.WithContext(ctx).Model(&domain.Reservation{}).Where("id = ?", resv.ID).
		Updates(map[string]any{
			"appt_date":          resv.ApptDate,
			"coworking_space_id": resv.CoworkingSpaceID,
			"status":             resv.Status,
		}).Error
}

func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Reservation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Confirm flips pending -> success and increments the owner's entry count in
// the same transaction. The status write is conditional on the previous
// status, so of two concurrent confirms exactly one succeeds and the counter
// moves exactly once.
func (r *ReservationRepo) Confirm(ctx context.Context, id string) (*domain.Reservation, error) {
	var resv domain.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Reservation{}).
			Where("id = ? AND status = ?", id, domain.StatusPending).
			Update("status", domain.StatusSuccess)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&domain.Reservation{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrInvalidTransition
		}
		if err := tx.First(&resv, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&domain.User{}).Where("id = ?", resv.UserID).
			UpdateColumn("number_of_entries", gorm.Expr("number_of_entries + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &resv, nil
}
