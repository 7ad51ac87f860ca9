package cache

import (
	"context"
	"database/sql/driver"
	"errors"
	"route-planner-service/internal/domain"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textArrayConverter lets []string through to sqlmock the way pgx accepts it.
type textArrayConverter struct{}

func (textArrayConverter) ConvertValue(v any) (driver.Value, error) {
	if s, ok := v.([]string); ok {
		return s, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newMockCache(t *testing.T) (*SQLGeocodeCache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(textArrayConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLGeocodeCache(db, nil), mock
}

func TestSQLGeocodeCacheGetMany(t *testing.T) {
	c, mock := newMockCache(t)

	rows := sqlmock.NewRows([]string{"address", "lat", "lng"}).
		AddRow("Vlamoven 7, Arnhem, Nederland", 51.9866, 5.9525)
	mock.ExpectQuery("FROM geocode_cache").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	got, err := c.GetMany(context.Background(), []string{
		"Vlamoven 7, Arnhem, Nederland",
		" Vlamoven 7, Arnhem, Nederland ",
		"Onbekend 1, Nergens, Nederland",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{
		"Vlamoven 7, Arnhem, Nederland": {Lat: 51.9866, Lng: 5.9525},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheGetManyEmptySkipsQuery(t *testing.T) {
	c, mock := newMockCache(t)

	got, err := c.GetMany(context.Background(), []string{"", "  "})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheGetManyQueryError(t *testing.T) {
	c, mock := newMockCache(t)

	mock.ExpectQuery("FROM geocode_cache").
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err := c.GetMany(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSQLGeocodeCachePutMany(t *testing.T) {
	c, mock := newMockCache(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO geocode_cache")
	prep.ExpectExec().
		WithArgs("Franciscusdreef 68, Utrecht, Nederland", 52.126, 5.1054).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := c.PutMany(context.Background(), map[string]domain.Coordinates{
		"Franciscusdreef 68, Utrecht, Nederland": {Lat: 52.126, Lng: 5.1054},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCachePutManyRejectsEmptyKey(t *testing.T) {
	c, mock := newMockCache(t)

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO geocode_cache")
	mock.ExpectRollback()

	err := c.PutMany(context.Background(), map[string]domain.Coordinates{" ": {Lat: 1, Lng: 1}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil, nil)
	_, err := c.GetMany(context.Background(), []string{"a"})
	require.Error(t, err)
	require.Error(t, c.PutMany(context.Background(), map[string]domain.Coordinates{"a": {}}))
}
