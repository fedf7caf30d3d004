package domain

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// groveNamespace roots all generated node ids.
var groveNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://grove.trai.ch/nodes"))

// CreateNodeID derives a stable node id from a plugin-local key.
// The same key yields the same id on every run, and keys never collide across plugins.
func CreateNodeID(pluginName, key string) string {
	ns := uuid.NewSHA1(groveNamespace, []byte(pluginName))
	return uuid.NewSHA1(ns, []byte(key)).String()
}

// ContentDigest returns a hex digest of the given content.
// Strings and byte slices are hashed as-is, anything else as its JSON encoding.
func ContentDigest(content any) (string, error) {
	var data []byte
	switch v := content.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
