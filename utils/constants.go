// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// DraftCachePrefix is the prefix used for booking draft session keys.
const DraftCachePrefix = "draft:"

// DraftTTL is how long an untouched booking draft survives before it
// is considered abandoned.
const DraftTTL = 30 * time.Minute
