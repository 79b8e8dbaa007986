// Package bootstrap builds the shared runtime pieces both entrypoints need
// from a loaded config.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/aggregate"
	"github.com/MrJamesThe3rd/eventdesk/internal/auth"
	"github.com/MrJamesThe3rd/eventdesk/internal/config"
	"github.com/MrJamesThe3rd/eventdesk/internal/database"
	"github.com/MrJamesThe3rd/eventdesk/internal/snapshot"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

// Backend opens the configured table store driver. The returned func
// releases it.
func Backend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (tablestore.Backend, func() error, error) {
	switch cfg.TableStore.Driver {
	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.TableStore.DSN)
		if err != nil {
			return nil, nil, err
		}

		if cfg.TableStore.Migrate {
			if err := database.EnsureSchema(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}

		return tablestore.NewPostgres(db, logger.Named("tablestore.postgres")), db.Close, nil
	default:
		rest := tablestore.NewREST(tablestore.RESTConfig{
			URL:     cfg.TableStore.URL,
			Key:     cfg.TableStore.Key,
			Timeout: cfg.TableStore.Timeout,
		}, logger.Named("tablestore.rest"))

		if tablestore.IsPlaceholder(cfg.TableStore.URL, cfg.TableStore.Key) {
			logger.Warn("table store is not configured; every request will fail until SUPABASE_URL and SUPABASE_ANON_KEY are set")
		}

		return rest, func() error { return nil }, nil
	}
}

// FileSession opens session storage at path, or at the default location
// under the user config dir when path is empty.
func FileSession(path string) (*auth.FileStorage, error) {
	if path == "" {
		var err error
		if path, err = auth.DefaultSessionPath(); err != nil {
			return nil, err
		}
	}

	return auth.OpenFileStorage(path)
}

func Money(cfg *config.Config) (*aggregate.Money, error) {
	return aggregate.NewMoney(cfg.Display.Currency, cfg.Display.Locale)
}

// Snapshots builds the snapshot scheduler from config. It returns nil when
// SNAPSHOT_CRON is unset. The returned func closes any sink connections.
func Snapshots(ctx context.Context, cfg *config.Config, source snapshot.Source, logger *zap.Logger) (*snapshot.Scheduler, func(context.Context), error) {
	noop := func(context.Context) {}

	if cfg.Snapshot.Cron == "" {
		return nil, noop, nil
	}

	loc, err := time.LoadLocation(cfg.Snapshot.Timezone)
	if err != nil {
		return nil, noop, fmt.Errorf("loading timezone %q: %w", cfg.Snapshot.Timezone, err)
	}

	sinks := []snapshot.Sink{snapshot.NewLogSink(logger.Named("snapshot.log"))}
	closeSinks := noop

	if cfg.Snapshot.MongoURI != "" {
		mongoSink, err := snapshot.NewMongoSink(ctx, cfg.Snapshot.MongoURI, cfg.Snapshot.MongoDB)
		if err != nil {
			return nil, noop, err
		}

		sinks = append(sinks, mongoSink)
		closeSinks = func(ctx context.Context) {
			if err := mongoSink.Close(ctx); err != nil {
				logger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
	}

	if cfg.Snapshot.SheetsCreds != "" {
		sheetsSink, err := snapshot.NewSheetsSink(ctx, cfg.Snapshot.SheetsCreds, cfg.Snapshot.SpreadsheetID, logger.Named("snapshot.sheets"))
		if err != nil {
			closeSinks(ctx)
			return nil, noop, err
		}

		sinks = append(sinks, sheetsSink)
	}

	return snapshot.NewScheduler(cfg.Snapshot.Cron, loc, source, sinks, logger.Named("snapshot")), closeSinks, nil
}
