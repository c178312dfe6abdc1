package database

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/bookmarks-api/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			Name:            "bookmarks",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    40,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(testConfig())
	require.NoError(t, err)

	assert.EqualValues(t, 20, pc.MaxConns)
	assert.EqualValues(t, 20, pc.MinConns, "min conns never exceed max conns")
	assert.Equal(t, 5*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "bookmarks", pc.ConnConfig.Database)
}

func TestBuildTracer(t *testing.T) {
	logger := zerolog.Nop()

	cfg := testConfig()
	_, ok := buildTracer(cfg, &logger, nil).(*slowQueryTracer)
	assert.True(t, ok, "only the slow query tracer applies outside local")

	cfg.Primary.Env = "local"
	_, ok = buildTracer(cfg, &logger, nil).(*multiTracer)
	assert.True(t, ok)

	cfg.Primary.Env = "test"
	cfg.Observability.Logging.SlowQueryThreshold = 0
	assert.Nil(t, buildTracer(cfg, &logger, nil))
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	tracer := newSlowQueryTracer(100*time.Millisecond, zerolog.New(&buf))

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer.now = func() time.Time { return now }

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	now = now.Add(20 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String(), "fast queries are not logged")

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(1)"})
	now = now.Add(time.Second)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("canceled")})

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "pg_sleep")
	assert.Contains(t, out, "slow query")
	assert.Contains(t, out, "canceled")
}

type recordingTracer struct {
	name  string
	calls *[]string
}

func (r recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	*r.calls = append(*r.calls, r.name+":start")
	return ctx
}

func (r recordingTracer) TraceQueryEnd(_ context.Context, _ *pgx.Conn, _ pgx.TraceQueryEndData) {
	*r.calls = append(*r.calls, r.name+":end")
}

func TestMultiTracer_CallsInOrder(t *testing.T) {
	var calls []string
	mt := &multiTracer{tracers: []pgx.QueryTracer{
		recordingTracer{name: "a", calls: &calls},
		recordingTracer{name: "b", calls: &calls},
	}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, []string{"a:start", "b:start", "a:end", "b:end"}, calls)
}

func TestEmbeddedMigrations(t *testing.T) {
	data, err := fs.ReadFile(migrations, "migrations/001_create_bookmarks.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "CREATE TABLE bookmarks")
	assert.Contains(t, sql, "gen_random_uuid()")
	assert.True(t, strings.Contains(sql, "---- create above / drop below ----"))
}
