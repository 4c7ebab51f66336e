package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andtit4/site-database-sub001/internal/domain/models"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

func TestSiteRepository_ListAndFind(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := NewSiteRepository(db)

	cols := []string{"id", "name", "site_type", "region", "latitude", "longitude", "status", "created_at", "updated_at"}
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM site WHERE site_type = ? ORDER BY name ASC LIMIT ?")).
		WithArgs("TOWER", 50).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("s1", "Dakar Nord", "TOWER", "Dakar", 14.75, -17.4, "active", now, now).
			AddRow("s2", "Thies", "TOWER", nil, nil, nil, "maintenance", now, now))

	sites, err := repo.List(context.Background(), "TOWER", 50)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	require.NotNil(t, sites[0].Latitude)
	assert.Equal(t, 14.75, *sites[0].Latitude)
	assert.Nil(t, sites[1].Region)

	mock.ExpectQuery(regexp.QuoteMeta("FROM site WHERE id = ? LIMIT 1")).WithArgs("nope").WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.FindByID(context.Background(), "nope")
	assert.True(t, appErrors.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSiteRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := NewSiteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM site WHERE id = ?")).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "s1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM site WHERE id = ?")).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, appErrors.IsNotFound(repo.Delete(context.Background(), "s1")))
}

func TestEquipmentRepository_InsertUnknownSite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := NewEquipmentRepository(db)

	mock.ExpectExec("INSERT INTO equipment").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err = repo.Insert(context.Background(), &models.Equipment{ID: "e1", SiteID: "ghost", Name: "Ant 1", EquipmentType: "ANTENNE", Status: "active"})
	assert.True(t, appErrors.IsValidation(err))
}

func TestEquipmentRepository_ListFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := NewEquipmentRepository(db)

	cols := []string{"id", "site_id", "name", "equipment_type", "model", "manufacturer", "status", "created_at", "updated_at"}
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM equipment WHERE 1=1 AND site_id = ? AND equipment_type = ? ORDER BY name ASC LIMIT ?")).
		WithArgs("s1", "ANTENNE", 10).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("e1", "s1", "Ant 1", "ANTENNE", "AQU4518", nil, "active", now, now))

	items, err := repo.List(context.Background(), "s1", "ANTENNE", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AQU4518", *items[0].Model)
	assert.Nil(t, items[0].Manufacturer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := NewNotificationRepository(db)

	update := "UPDATE notifications SET is_read = TRUE WHERE id = ?"
	exists := "SELECT EXISTS(SELECT 1 FROM notifications WHERE id = ?)"

	mock.ExpectExec(regexp.QuoteMeta(update)).WithArgs("n1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkAsRead(context.Background(), "n1"))

	// Already read
	mock.ExpectExec(regexp.QuoteMeta(update)).WithArgs("n1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(exists)).WithArgs("n1").WillReturnRows(sqlmock.NewRows([]string{"e"}).AddRow(true))
	require.NoError(t, repo.MarkAsRead(context.Background(), "n1"))

	mock.ExpectExec(regexp.QuoteMeta(update)).WithArgs("n9").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(exists)).WithArgs("n9").WillReturnRows(sqlmock.NewRows([]string{"e"}).AddRow(false))
	assert.True(t, appErrors.IsNotFound(repo.MarkAsRead(context.Background(), "n9")))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications WHERE is_read = FALSE ORDER BY created_at DESC LIMIT ?")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "message", "type", "is_read", "created_at"}).
			AddRow("n1", "Specification updated", "12 rows discarded", "warning", false, time.Now()))

	list, err := repo.List(context.Background(), true, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "warning", list[0].Type)
}
