// Package cache provides a file-backed TTL cache for JSON payloads.
//
// Each entry is one JSON document named <namespace>_<md5(key)>.json under
// the cache directory. The file's modification time doubles as the write
// timestamp; an entry is valid for one hour and then lazily treated as a
// miss without being deleted. Writes are best-effort and never fail the
// caller.
package cache
