// Package formstore persists form snapshots between requests.
//
// MemoryStore is meant for development and tests, RedisStore and PGStore for
// deployments with more than one process. All implementations return
// ErrSnapshotNotFound for missing or expired snapshots and reject snapshots
// without an id or form name with ErrInvalidSnapshot.
//
//	store := formstore.NewRedisStore(client, "formkit:snapshot:", 24*time.Hour)
//	if err := store.Save(ctx, f.Snapshot(sessionID)); err != nil {
//		return err
//	}
//	snap, err := store.Get(ctx, sessionID)
//	if errors.Is(err, formstore.ErrSnapshotNotFound) {
//		// start a new session
//	}
//	f.Restore(snap)
//
// PGStore needs its table; Migrate applies the embedded goose migrations.
package formstore
