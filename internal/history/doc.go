// Package history records completed comparisons in a SQLite database.
//
// Only scalar outcomes are stored: document names, line/word/distinct-word
// counts, the token policy, and the angle. Frequency vectors are never
// persisted. Schema creation is serialized across processes with a lock file
// next to the database so concurrent CLI invocations can share one history.
package history
