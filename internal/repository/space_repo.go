package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usermenei/E-ses/internal/domain"
)

type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpIn  FilterOp = "in"
)

// spaceColumns enumerates the fields that may appear in filters, selects
// and sorts, keyed by their JSON names. Anything else is rejected rather
// than spliced into SQL.
var spaceColumns = map[string]string{
	"name":       "name",
	"address":    "address",
	"district":   "district",
	"province":   "province",
	"postalcode": "postalcode",
	"tel":        "tel",
	"region":     "region",
	"openTime":   "open_time",
	"closeTime":  "close_time",
	"createdAt":  "created_at",
}

type SpaceFilter struct {
	Field  string
	Op     FilterOp
	Values []string // one value except for OpIn
}

type SpaceQuery struct {
	Filters []SpaceFilter
	Select  []string // JSON field names
	Sort    []string // JSON field name, "-" prefix for descending
	Page    int      // 1-based
	Limit   int
}

type SpaceRepo struct{ db *gorm.DB }

func NewSpaceRepo(db *gorm.DB) *SpaceRepo {
	return &SpaceRepo{db: db}
}

func (r *SpaceRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.CoworkingSpace{})
}

func (r *SpaceRepo) Create(ctx context.Context, s *domain.CoworkingSpace) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: duplicate field value entered, this coworking space already exists", domain.ErrValidation)
		}
		return err
	}
	return nil
}

func (r *SpaceRepo) ByID(ctx context.Context, id string) (*domain.CoworkingSpace, error) {
	var s domain.CoworkingSpace
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ByIDWithReservations resolves the space -> reservations back-reference at
// query time.
func (r *SpaceRepo) ByIDWithReservations(ctx context.Context, id string) (*domain.CoworkingSpace, error) {
	var s domain.CoworkingSpace
	if err := r.db.WithContext(ctx).Preload("Reservations").First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SpaceRepo) List(ctx context.Context, q SpaceQuery) ([]domain.CoworkingSpace, int64, error) {
	qb := r.db.WithContext(ctx).Model(&domain.CoworkingSpace{})

	for _, f := range q.Filters {
		col, ok := spaceColumns[f.Field]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown filter field %q", domain.ErrValidation, f.Field)
		}
		switch f.Op {
		case OpEq:
			qb = qb.Where(col+" = ?", f.Values[0])
		case OpGt:
			qb = qb.Where(col+" > ?", f.Values[0])
		case OpGte:
			qb = qb.Where(col+" >= ?", f.Values[0])
		case OpLt:
			qb = qb.Where(col+" < ?", f.Values[0])
		case OpLte:
			qb = qb.Where(col+" <= ?", f.Values[0])
		case OpIn:
			qb = qb.Where(col+" IN ?", f.Values)
		default:
			return nil, 0, fmt.Errorf("%w: unknown filter operator %q", domain.ErrValidation, f.Op)
		}
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(q.Select) > 0 {
		cols := []string{"id"}
		for _, f := range q.Select {
			col, ok := spaceColumns[f]
			if !ok {
				return nil, 0, fmt.Errorf("%w: unknown select field %q", domain.ErrValidation, f)
			}
			cols = append(cols, col)
		}
		qb = qb.Select(cols)
	}

	if len(q.Sort) == 0 {
		qb = qb.Order("created_at DESC")
	}
	for _, s := range q.Sort {
		field, dir := s, "ASC"
		if strings.HasPrefix(s, "-") {
			field, dir = s[1:], "DESC"
		}
		col, ok := spaceColumns[field]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown sort field %q", domain.ErrValidation, field)
		}
		qb = qb.Order(col + " " + dir)
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 25
	}
	var out []domain.CoworkingSpace
	if err := qb.Limit(limit).Offset((page - 1) * limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *SpaceRepo) Update(ctx context.Context, s *domain.CoworkingSpace) error {
	err := r.db.WithContext(ctx).Model(&domain.CoworkingSpace{}).Where("id = ?", s.ID).Updates(s).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: duplicate field value entered, update would create duplicate", domain.ErrValidation)
	}
	return err
}

// Delete removes the space and every reservation referencing it in one
// transaction, so the catalog and the ledger cannot diverge.
func (r *SpaceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.CoworkingSpace
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Where("coworking_space_id = ?", id).Delete(&domain.Reservation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
}
