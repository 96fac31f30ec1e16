package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrm/internal/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type row struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type countingRecorder struct {
	hits, misses, errs int
}

func (r *countingRecorder) RecordCacheHit(string)   { r.hits++ }
func (r *countingRecorder) RecordCacheMiss(string)  { r.misses++ }
func (r *countingRecorder) RecordCacheError(string) { r.errs++ }

func TestRedisCache_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("hit decodes json", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := cache.NewRedis(rdb, time.Minute)

		payload, _ := json.Marshal(row{ID: 7, Title: "Engineer"})
		mock.ExpectGet("k").SetVal(string(payload))

		var got row
		ok, err := c.Get(ctx, "k", &got)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, row{ID: 7, Title: "Engineer"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis nil is a miss", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := cache.NewRedis(rdb, time.Minute)

		mock.ExpectGet("k").RedisNil()

		var got row
		ok, err := c.Get(ctx, "k", &got)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("connection error is surfaced", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		c := cache.NewRedis(rdb, time.Minute)

		mock.ExpectGet("k").SetErr(errors.New("connection refused"))

		var got row
		ok, err := c.Get(ctx, "k", &got)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestRedisCache_SetAndDelete(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	c := cache.NewRedis(rdb, 0)

	value := row{ID: 1, Title: "HR"}
	payload, _ := json.Marshal(value)
	mock.ExpectSet("k", payload, cache.DefaultTTL).SetVal("OK")
	mock.ExpectDel("k", "j").SetVal(2)

	assert.NoError(t, c.Set(ctx, "k", value))
	assert.NoError(t, c.Delete(ctx, "k", "j"))
	assert.NoError(t, c.Delete(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedis_NilClientIsNoop(t *testing.T) {
	c := cache.NewRedis(nil, time.Minute)

	var got row
	ok, err := c.Get(context.Background(), "k", &got)

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(context.Background(), "k", row{}))
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	rec := &countingRecorder{}
	c := cache.Instrument(cache.NewRedis(rdb, time.Minute), "attrs", rec)

	payload, _ := json.Marshal(row{ID: 1})
	mock.ExpectGet("a").SetVal(string(payload))
	mock.ExpectGet("b").RedisNil()
	mock.ExpectGet("c").SetErr(errors.New("boom"))

	var got row
	_, _ = c.Get(ctx, "a", &got)
	_, _ = c.Get(ctx, "b", &got)
	_, _ = c.Get(ctx, "c", &got)

	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
	assert.Equal(t, 1, rec.errs)
}
