package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// MaxKeyLen matches the memcached key limit; longer storage keys are hashed.
const MaxKeyLen = 250

// SiteSuffix appends "_<siteID>" to s.
func SiteSuffix(s string, siteID int64) string {
	return s + "_" + strconv.FormatInt(siteID, 10)
}

// ObjectKey returns the storage key of a single-mode entry:
// "obj:<len(group)>:<group>:<key>". The group length fixes where the group
// ends, so ':' inside either part cannot make two pairs collide.
func ObjectKey(group, objectKey string) string {
	return bounded("obj:", "objh:", strconv.Itoa(len(group))+":"+group+":"+objectKey)
}

// GroupKey returns the storage key of a group aggregate: "grp:<group>".
func GroupKey(group string) string {
	return bounded("grp:", "grph:", group)
}

// bounded returns prefix+body, or hashedPrefix + first 16 hex chars of
// sha256(body) when that exceeds MaxKeyLen. Hashed keys have their own
// prefix and never equal a literal key.
func bounded(prefix, hashedPrefix, body string) string {
	if k := prefix + body; len(k) <= MaxKeyLen {
		return k
	}
	sum := sha256.Sum256([]byte(body))
	return hashedPrefix + hex.EncodeToString(sum[:8])
}
