package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/repository"
)

type testEnv struct {
	db     *gorm.DB
	users  *repository.UserRepo
	spaces *repository.SpaceRepo
	resv   *ReservationSvc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open("file:"+path+"?_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.CoworkingSpace{}, &domain.Reservation{}))

	spaces := repository.NewSpaceRepo(gdb)
	return &testEnv{
		db:     gdb,
		users:  repository.NewUserRepo(gdb),
		spaces: spaces,
		resv:   NewReservationSvc(repository.NewReservationRepo(gdb), spaces, nil),
	}
}

func (e *testEnv) user(t *testing.T, email string, role domain.Role) domain.Actor {
	t.Helper()
	u := &domain.User{Name: "Someone", Email: email, Password: "x", Role: role}
	require.NoError(t, e.users.Create(context.Background(), u))
	return domain.Actor{ID: u.ID, Role: role}
}

func (e *testEnv) space(t *testing.T, name string) *domain.CoworkingSpace {
	t.Helper()
	s := &domain.CoworkingSpace{
		Name: name, Address: "1 Road", District: "D", Province: "P",
		Postalcode: "10000", Tel: "02", Region: "R", OpenTime: "08:00", CloseTime: "20:00",
	}
	require.NoError(t, e.spaces.Create(context.Background(), s))
	return s
}

func appt() time.Time { return time.Now().Add(72 * time.Hour).UTC() }

func TestCreateUnknownSpace(t *testing.T) {
	env := newTestEnv(t)
	actor := env.user(t, "u@test.dev", domain.RoleUser)

	_, err := env.resv.Create(context.Background(), actor, "9a2b0000-0000-0000-0000-000000000000", appt())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateQuotaBoundary(t *testing.T) {
	env := newTestEnv(t)
	actor := env.user(t, "u@test.dev", domain.RoleUser)
	sp := env.space(t, "Space")

	for i := 0; i < 2; i++ {
		_, err := env.resv.Create(context.Background(), actor, sp.ID, appt())
		require.NoError(t, err)
	}
	// third still fits
	r3, err := env.resv.Create(context.Background(), actor, sp.ID, appt())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, r3.Status)
	assert.Equal(t, actor.ID, r3.UserID)

	// fourth hits the limit exactly at 3 held
	_, err = env.resv.Create(context.Background(), actor, sp.ID, appt())
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestCreateQuotaDoesNotApplyToAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin@test.dev", domain.RoleAdmin)
	sp := env.space(t, "Space")

	for i := 0; i < 5; i++ {
		_, err := env.resv.Create(context.Background(), admin, sp.ID, appt())
		require.NoError(t, err)
	}
}

func TestGetOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@test.dev", domain.RoleUser)
	stranger := env.user(t, "stranger@test.dev", domain.RoleUser)
	admin := env.user(t, "admin@test.dev", domain.RoleAdmin)
	sp := env.space(t, "Space")

	r, err := env.resv.Create(context.Background(), owner, sp.ID, appt())
	require.NoError(t, err)

	_, err = env.resv.Get(context.Background(), owner, r.ID)
	assert.NoError(t, err)
	_, err = env.resv.Get(context.Background(), admin, r.ID)
	assert.NoError(t, err)
	_, err = env.resv.Get(context.Background(), stranger, r.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateRules(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@test.dev", domain.RoleUser)
	stranger := env.user(t, "stranger@test.dev", domain.RoleUser)
	sp := env.space(t, "Space")
	other := env.space(t, "Other Space")

	r, err := env.resv.Create(context.Background(), owner, sp.ID, appt())
	require.NoError(t, err)

	// non-owner cannot touch it
	newDate := appt().Add(time.Hour)
	_, err = env.resv.Update(context.Background(), stranger, r.ID, ReservationPatch{ApptDate: &newDate})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// status cannot be forced to success, whatever else the patch carries
	success := domain.StatusSuccess
	_, err = env.resv.Update(context.Background(), owner, r.ID, ReservationPatch{ApptDate: &newDate, Status: &success})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// a changed space reference must resolve
	missing := "deadbeef-0000-0000-0000-000000000000"
	_, err = env.resv.Update(context.Background(), owner, r.ID, ReservationPatch{CoworkingSpaceID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// unknown status values are rejected
	bogus := domain.ReservationStatus("approved")
	_, err = env.resv.Update(context.Background(), owner, r.ID, ReservationPatch{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// a legal patch applies and keeps the owner
	cancelled := domain.StatusCancelled
	got, err := env.resv.Update(context.Background(), owner, r.ID, ReservationPatch{
		ApptDate:         &newDate,
		CoworkingSpaceID: &other.ID,
		Status:           &cancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.UserID)
	assert.Equal(t, other.ID, got.CoworkingSpaceID)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.WithinDuration(t, newDate, got.ApptDate, time.Second)
}

func TestDeleteOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@test.dev", domain.RoleUser)
	stranger := env.user(t, "stranger@test.dev", domain.RoleUser)
	admin := env.user(t, "admin@test.dev", domain.RoleAdmin)
	sp := env.space(t, "Space")

	r1, err := env.resv.Create(context.Background(), owner, sp.ID, appt())
	require.NoError(t, err)
	r2, err := env.resv.Create(context.Background(), owner, sp.ID, appt())
	require.NoError(t, err)

	assert.ErrorIs(t, env.resv.Delete(context.Background(), stranger, r1.ID), domain.ErrForbidden)
	assert.NoError(t, env.resv.Delete(context.Background(), owner, r1.ID))
	assert.NoError(t, env.resv.Delete(context.Background(), admin, r2.ID))

	_, err = env.resv.Get(context.Background(), owner, r1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@test.dev", domain.RoleUser)
	admin := env.user(t, "admin@test.dev", domain.RoleAdmin)
	sp := env.space(t, "Space")

	r, err := env.resv.Create(context.Background(), owner, sp.ID, appt())
	require.NoError(t, err)

	_, err = env.resv.Confirm(context.Background(), owner, r.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := env.resv.Confirm(context.Background(), admin, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, got.Status)

	u, err := env.users.ByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.NumberOfEntries)
}

func TestUserLockStableAndBounded(t *testing.T) {
	env := newTestEnv(t)

	// the same user always serializes on the same lock
	assert.Same(t, env.resv.userLock("user-1"), env.resv.userLock("user-1"))

	// the lock set stays fixed no matter how many users show up
	distinct := map[*sync.Mutex]struct{}{}
	for i := 0; i < 1000; i++ {
		distinct[env.resv.userLock(fmt.Sprintf("user-%d", i))] = struct{}{}
	}
	assert.LessOrEqual(t, len(distinct), userLockShards)
}

func TestListScoping(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice@test.dev", domain.RoleUser)
	bob := env.user(t, "bob@test.dev", domain.RoleUser)
	admin := env.user(t, "admin@test.dev", domain.RoleAdmin)
	sp1 := env.space(t, "One")
	sp2 := env.space(t, "Two")

	_, err := env.resv.Create(context.Background(), alice, sp1.ID, appt())
	require.NoError(t, err)
	_, err = env.resv.Create(context.Background(), alice, sp2.ID, appt())
	require.NoError(t, err)
	_, err = env.resv.Create(context.Background(), bob, sp1.ID, appt())
	require.NoError(t, err)

	mine, err := env.resv.List(context.Background(), alice, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, alice.ID, r.UserID)
		require.NotNil(t, r.CoworkingSpace)
		assert.NotEmpty(t, r.CoworkingSpace.Name)
	}

	all, err := env.resv.List(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := env.resv.List(context.Background(), admin, sp1.ID)
	require.NoError(t, err)
	assert.Len(t, scoped, 2)
}
