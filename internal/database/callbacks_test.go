package database

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockMetricsRecorder captures recorded queries for assertions
type mockMetricsRecorder struct {
	mu      sync.Mutex
	queries []queryRecord
	stats   []sql.DBStats
}

type queryRecord struct {
	operation string
	table     string
	duration  time.Duration
	err       error
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, queryRecord{operation, table, duration, err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dbStats, ok := stats.(sql.DBStats); ok {
		m.stats = append(m.stats, dbStats)
	}
}

func (m *mockMetricsRecorder) recorded() []queryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]queryRecord, len(m.queries))
	copy(out, m.queries)
	return out
}

func (m *mockMetricsRecorder) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = nil
}

type testModel struct {
	ID        string `gorm:"type:text;primaryKey"`
	Name      string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (testModel) TableName() string {
	return "test_models"
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testModel{}))
	return db
}

func TestRegisterMetricsCallbacks(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	row := testModel{ID: uuid.New().String(), Name: "one"}

	t.Run("create", func(t *testing.T) {
		recorder.reset()
		require.NoError(t, db.Create(&row).Error)

		queries := recorder.recorded()
		require.Len(t, queries, 1)
		assert.Equal(t, "insert", queries[0].operation)
		assert.Equal(t, "test_models", queries[0].table)
		assert.Greater(t, queries[0].duration, time.Duration(0))
		assert.NoError(t, queries[0].err)
	})

	t.Run("query", func(t *testing.T) {
		recorder.reset()
		var result testModel
		require.NoError(t, db.First(&result).Error)

		queries := recorder.recorded()
		require.Len(t, queries, 1)
		assert.Equal(t, "select", queries[0].operation)
		assert.Equal(t, "test_models", queries[0].table)
	})

	t.Run("update", func(t *testing.T) {
		recorder.reset()
		require.NoError(t, db.Model(&row).Update("name", "two").Error)

		queries := recorder.recorded()
		require.Len(t, queries, 1)
		assert.Equal(t, "update", queries[0].operation)
	})

	t.Run("delete", func(t *testing.T) {
		recorder.reset()
		require.NoError(t, db.Delete(&row).Error)

		queries := recorder.recorded()
		require.Len(t, queries, 1)
		assert.Equal(t, "delete", queries[0].operation)
	})
}

func TestRegisterMetricsCallbacks_RecordsErrors(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	var result testModel
	err := db.Where("id = ?", "missing").First(&result).Error
	require.Error(t, err)

	queries := recorder.recorded()
	require.Len(t, queries, 1)
	assert.Equal(t, "select", queries[0].operation)
	assert.Error(t, queries[0].err)
}

func TestStartDBStatsReporter(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	stop := make(chan struct{})
	StartDBStatsReporter(db, recorder, 10*time.Millisecond, stop)

	assert.Eventually(t, func() bool {
		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		return len(recorder.stats) > 0
	}, time.Second, 10*time.Millisecond)

	close(stop)
}
