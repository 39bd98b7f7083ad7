package repositories_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
	"tripmate/internal/repositories"
)

// newTestDB connects to the database named by TEST_DATABASE_URL and migrates
// the trip tables. Tests in this file are skipped when no test database is
// configured, so they never break environments without one.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&db_models.Trip{},
		&db_models.Flight{},
		&db_models.Hotel{},
		&db_models.ItineraryEntry{},
	))
	return db
}

// cleanupGroup removes every row the test created for the group, children
// first, when the test finishes.
func cleanupGroup(t *testing.T, db *gorm.DB, groupID uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		var ids []uuid.UUID
		db.Model(&db_models.Trip{}).Where("group_id = ?", groupID).Pluck("id", &ids)
		if len(ids) > 0 {
			db.Unscoped().Where("trip_id IN ?", ids).Delete(&db_models.ItineraryEntry{})
			db.Unscoped().Where("trip_id IN ?", ids).Delete(&db_models.Hotel{})
			db.Unscoped().Where("trip_id IN ?", ids).Delete(&db_models.Flight{})
		}
		db.Unscoped().Where("group_id = ?", groupID).Delete(&db_models.Trip{})
	})
}

func TestGetOrCreateActiveTrip_CreatesAndReuses(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewTripRepository(db)
	gid := uuid.New()
	cleanupGroup(t, db, gid)
	ctx := context.Background()

	first, err := repo.GetOrCreateActiveTrip(ctx, gid.String())
	require.NoError(t, err)
	assert.True(t, first.Status)
	assert.Equal(t, gid, first.GroupID)

	second, err := repo.GetOrCreateActiveTrip(ctx, gid.String())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&db_models.Trip{}).Where("group_id = ?", gid).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateActiveTrip_RetiresStaleDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewTripRepository(db)
	gid := uuid.New()
	cleanupGroup(t, db, gid)
	ctx := context.Background()

	older := db_models.Trip{GroupID: gid, Status: true}
	require.NoError(t, db.Create(&older).Error)
	newer := db_models.Trip{GroupID: gid, Status: true}
	require.NoError(t, db.Create(&newer).Error)

	// backdate the first so ordering by created_at is unambiguous
	require.NoError(t, db.Model(&db_models.Trip{}).
		Where("id = ?", older.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour).Unix()).Error)

	got, err := repo.GetOrCreateActiveTrip(ctx, gid.String())
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	// the stale duplicate is deactivated, not deleted
	var trips []db_models.Trip
	require.NoError(t, db.Where("group_id = ?", gid).Find(&trips).Error)
	require.Len(t, trips, 2)

	active := 0
	for _, tr := range trips {
		if tr.Status {
			active++
			assert.Equal(t, newer.ID, tr.ID)
		}
	}
	assert.Equal(t, 1, active)
}

func TestClearSearchResults_DeactivatesWithoutDeleting(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewTripRepository(db)
	gid := uuid.New()
	cleanupGroup(t, db, gid)
	ctx := context.Background()

	trip, err := repo.GetOrCreateActiveTrip(ctx, gid.String())
	require.NoError(t, err)

	require.NoError(t, repo.SaveFlights(ctx, []db_models.Flight{
		{TripID: trip.ID, Airline: "IB", Price: 540.5, Currency: "USD", Status: true},
		{TripID: trip.ID, Airline: "AM", Price: 610.0, Currency: "USD", Status: true},
	}))
	require.NoError(t, repo.SaveHotels(ctx, []db_models.Hotel{
		{TripID: trip.ID, Name: "Reef Inn", PricePerNight: 120, Currency: "USD", Status: true},
	}))

	require.NoError(t, repo.ClearSearchResults(ctx, trip.ID.String()))

	var flights []db_models.Flight
	require.NoError(t, db.Where("trip_id = ?", trip.ID).Find(&flights).Error)
	require.Len(t, flights, 2)
	for _, f := range flights {
		assert.False(t, f.Status)
	}

	var hotels []db_models.Hotel
	require.NoError(t, db.Where("trip_id = ?", trip.ID).Find(&hotels).Error)
	require.Len(t, hotels, 1)
	assert.False(t, hotels[0].Status)
}

func TestReplaceItinerary_SecondBatchSupersedesFirst(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewTripRepository(db)
	gid := uuid.New()
	cleanupGroup(t, db, gid)
	ctx := context.Background()

	trip, err := repo.GetOrCreateActiveTrip(ctx, gid.String())
	require.NoError(t, err)

	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ReplaceItinerary(ctx, trip.ID, []db_models.ItineraryEntry{
		{TripID: trip.ID, Day: day, Activity: "Snorkel", Location: "Reef", Status: true},
		{TripID: trip.ID, Day: day, Activity: "Swim", Location: "Beach", Status: true},
	}))
	require.NoError(t, repo.ReplaceItinerary(ctx, trip.ID, []db_models.ItineraryEntry{
		{TripID: trip.ID, Day: day, Activity: "Hike", Location: "Park", Status: true},
	}))

	var entries []db_models.ItineraryEntry
	require.NoError(t, db.Where("trip_id = ?", trip.ID).Find(&entries).Error)
	require.Len(t, entries, 3)

	var activeActivities []string
	for _, e := range entries {
		if e.Status {
			activeActivities = append(activeActivities, e.Activity)
		}
	}
	assert.Equal(t, []string{"Hike"}, activeActivities)
}
