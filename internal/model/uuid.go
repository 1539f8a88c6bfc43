package model

import "github.com/google/uuid"

// StableID derives a deterministic UUID (v5) from a namespace and name,
// so content without an explicit id keeps the same id across builds.
func StableID(namespace, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace+"/"+name)).String()
}
