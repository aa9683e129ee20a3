// Package store provides SQLite-backed durable storage for the VertixPC
// catalog: products, users, and order history.
//
// The schema defines four tables (products, users, cart_items, orders)
// plus a meta table holding the seed marker. The cart itself lives in
// the key/value substrate; cart_items exists so snapshots exported here
// stay structurally compatible with earlier builds that persisted the
// cart relationally.
//
// # Durability
//
// Mutations are incremental WAL writes, not whole-database rewrites.
// The full snapshot is only materialized for Export and accepted by
// Import, which validates the candidate bytes before touching the live
// database.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Seeding is idempotent: the bundled catalog and the Administrator user
// are inserted exactly once, guarded by the meta marker row.
package store
