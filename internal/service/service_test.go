package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	return database
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: newTestDB(t)}
}

func seedUser(t *testing.T, r *repo.GormRepo, name, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(t, r.DB.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price int64) models.Product {
	t.Helper()

	owner := models.User{Name: "seller", Email: name + "@seller.example", PasswordHash: "x"}
	require.NoError(t, r.DB.Create(&owner).Error)

	prod := models.Product{
		UserID:       owner.ID,
		Name:         name,
		Description:  "test product",
		Price:        price,
		CountInStock: 10,
	}
	require.NoError(t, r.DB.Create(&prod).Error)
	return prod
}
