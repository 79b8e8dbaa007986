package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/config"
	"github.com/MrJamesThe3rd/eventdesk/internal/records"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

func baseConfig() *config.Config {
	var cfg config.Config
	cfg.TableStore.Driver = config.DriverREST
	cfg.TableStore.URL = tablestore.PlaceholderURL
	cfg.TableStore.Key = tablestore.PlaceholderKey
	cfg.Display.Currency = "INR"
	cfg.Display.Locale = "en-IN"
	cfg.Snapshot.Timezone = "UTC"

	return &cfg
}

func TestBackendDefaultsToREST(t *testing.T) {
	backend, closeFn, err := Backend(context.Background(), baseConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, closeFn())

	_, err = backend.Select(context.Background(), records.TableCustomers, nil)
	assert.ErrorIs(t, err, records.ErrUnconfigured)
}

func TestFileSessionAtPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	storage, err := FileSession(path)
	require.NoError(t, err)
	require.NoError(t, storage.Set("k", "v"))

	reopened, err := FileSession(path)
	require.NoError(t, err)

	v, ok := reopened.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMoney(t *testing.T) {
	money, err := Money(baseConfig())
	require.NoError(t, err)
	assert.NotNil(t, money)

	cfg := baseConfig()
	cfg.Display.Currency = "rupees"
	_, err = Money(cfg)
	assert.Error(t, err)
}

func TestSnapshotsDisabledWithoutCron(t *testing.T) {
	sched, closeFn, err := Snapshots(context.Background(), baseConfig(), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, sched)
	closeFn(context.Background())
}

func TestSnapshotsLogSinkOnly(t *testing.T) {
	cfg := baseConfig()
	cfg.Snapshot.Cron = "0 6 * * *"

	sched, closeFn, err := Snapshots(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, sched)
	closeFn(context.Background())
}

func TestSnapshotsBadTimezone(t *testing.T) {
	cfg := baseConfig()
	cfg.Snapshot.Cron = "0 6 * * *"
	cfg.Snapshot.Timezone = "Mars/Olympus"

	_, _, err := Snapshots(context.Background(), cfg, nil, zap.NewNop())
	assert.Error(t, err)
}
