// Package repositories implements SQLite persistence standing in for on-device storage.
//
// Key Implementations:
//   - [KVStore] : string key/value pairs, the only shared mutable resource
//   - [TokenStore] : the partner API bearer token under [TokenKey]
//   - [CalendarRepository] : calendar events as a JSON array under [CalendarKey]
//   - [DownloadRepository] : bookkeeping for documents cached on disk
//
// Each key is owned by exactly one feature. Values are stored verbatim; callers decide the encoding.
package repositories
