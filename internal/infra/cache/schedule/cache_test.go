package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const ttl = 10 * time.Minute

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleTemplate), args.Error(1)
}

func (m *mockStore) PutTemplate(ctx context.Context, template *domain.ScheduleTemplate) error {
	return m.Called(ctx, template).Error(0)
}

type countingMetrics struct {
	results []string
}

func (c *countingMetrics) IncTemplateCache(result string) {
	c.results = append(c.results, result)
}

func yogaTemplate() *domain.ScheduleTemplate {
	template := domain.NewScheduleTemplate("yoga")
	template.WeeklySlots[time.Monday] = []domain.Slot{
		{Time: "08:00", Enabled: true},
		{Time: "09:00", Enabled: false, StaffID: ptr.Ptr("anna")},
	}
	return template
}

func TestGetTemplateMissFillsCache(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := new(mockStore)
	metrics := &countingMetrics{}
	cache := NewCache(store, rdb, ttl, metrics, logger.Nop())
	ctx := context.Background()

	template := yogaTemplate()
	payload, err := encode(template)
	require.NoError(t, err)

	rmock.ExpectGet("schedule:template:yoga").RedisNil()
	store.On("GetTemplate", ctx, "yoga").Return(template, nil).Once()
	rmock.ExpectSet("schedule:template:yoga", payload, ttl).SetVal("OK")

	got, err := cache.GetTemplate(ctx, "yoga")
	require.NoError(t, err)
	assert.Equal(t, template, got)
	assert.Equal(t, []string{"miss"}, metrics.results)
	assert.NoError(t, rmock.ExpectationsWereMet())
	store.AssertExpectations(t)
}

func TestGetTemplateHit(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := new(mockStore)
	metrics := &countingMetrics{}
	cache := NewCache(store, rdb, ttl, metrics, logger.Nop())

	template := yogaTemplate()
	payload, err := encode(template)
	require.NoError(t, err)

	rmock.ExpectGet("schedule:template:yoga").SetVal(string(payload))

	got, err := cache.GetTemplate(context.Background(), "yoga")
	require.NoError(t, err)
	assert.Equal(t, template.WeeklySlots, got.WeeklySlots)
	assert.Equal(t, []string{"hit"}, metrics.results)
	store.AssertNotCalled(t, "GetTemplate", mock.Anything, mock.Anything)
}

func TestGetTemplateRedisDownFallsBackToStore(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := new(mockStore)
	cache := NewCache(store, rdb, ttl, &countingMetrics{}, logger.Nop())
	ctx := context.Background()

	template := yogaTemplate()
	payload, err := encode(template)
	require.NoError(t, err)

	rmock.ExpectGet("schedule:template:yoga").SetErr(errors.New("connection refused"))
	store.On("GetTemplate", ctx, "yoga").Return(template, nil)
	rmock.ExpectSet("schedule:template:yoga", payload, ttl).SetErr(errors.New("connection refused"))

	got, err := cache.GetTemplate(ctx, "yoga")
	require.NoError(t, err)
	assert.Equal(t, template, got)
}

func TestGetTemplateStoreErrorNotCached(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := new(mockStore)
	cache := NewCache(store, rdb, ttl, &countingMetrics{}, logger.Nop())
	ctx := context.Background()
	storeErr := errors.New("template not found")

	rmock.ExpectGet("schedule:template:massage").RedisNil()
	store.On("GetTemplate", ctx, "massage").Return(nil, storeErr)

	_, err := cache.GetTemplate(ctx, "massage")
	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestPutTemplateInvalidates(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := new(mockStore)
	cache := NewCache(store, rdb, ttl, &countingMetrics{}, logger.Nop())
	ctx := context.Background()
	template := yogaTemplate()

	store.On("PutTemplate", ctx, template).Return(nil)
	rmock.ExpectDel("schedule:template:yoga").SetVal(1)

	require.NoError(t, cache.PutTemplate(ctx, template))
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestPutTemplateInTransactionInvalidatesAfterCommit(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mgr := txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil))

	rdb, rmock := redismock.NewClientMock()
	store := new(mockStore)
	cache := NewCache(store, rdb, ttl, &countingMetrics{}, logger.Nop())
	template := yogaTemplate()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	store.On("PutTemplate", mock.Anything, template).Return(nil)

	err = mgr.Do(context.Background(), func(txCtx context.Context) error {
		require.NoError(t, cache.PutTemplate(txCtx, template))
		// до коммита кэш не трогаем: ожидание Del появляется только здесь
		rmock.ExpectDel("schedule:template:yoga").SetVal(1)
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPutTemplateRollbackKeepsCache(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mgr := txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil))

	rdb, rmock := redismock.NewClientMock()
	store := new(mockStore)
	cache := NewCache(store, rdb, ttl, &countingMetrics{}, logger.Nop())
	template := yogaTemplate()
	conflict := errors.New("conflict")

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	store.On("PutTemplate", mock.Anything, template).Return(nil)
	rmock.ExpectDel("schedule:template:yoga").SetVal(1)

	err = mgr.Do(context.Background(), func(txCtx context.Context) error {
		require.NoError(t, cache.PutTemplate(txCtx, template))
		return conflict
	})

	assert.ErrorIs(t, err, conflict)
	assert.Error(t, rmock.ExpectationsWereMet(), "del must not run after rollback")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDecodeRejectsBadPayload(t *testing.T) {
	_, err := decode([]byte(`{"service_id":"yoga","weekly_slots":{"1":[{"time":"25:00"}]}}`))
	assert.Error(t, err)

	_, err = decode([]byte(`{"weekly_slots":{}}`))
	assert.Error(t, err)
}
