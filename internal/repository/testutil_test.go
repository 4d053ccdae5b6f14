package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/usermenei/E-ses/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open("file:"+path+"?_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.CoworkingSpace{}, &domain.Reservation{}))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Test User", Email: email, Password: "x", Role: role}
	require.NoError(t, NewUserRepo(gdb).Create(context.Background(), u))
	return u
}

func seedSpace(t *testing.T, gdb *gorm.DB, name string) *domain.CoworkingSpace {
	t.Helper()
	s := &domain.CoworkingSpace{
		Name:       name,
		Address:    "123 Main Rd",
		District:   "Bang Rak",
		Province:   "Bangkok",
		Postalcode: "10500",
		Tel:        "02-111-2222",
		Region:     "Central",
		OpenTime:   "09:00",
		CloseTime:  "21:00",
	}
	require.NoError(t, NewSpaceRepo(gdb).Create(context.Background(), s))
	return s
}
