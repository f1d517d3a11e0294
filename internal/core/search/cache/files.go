// Copyright (c) 2026 Catalog. All rights reserved.

package cache

import (
	"encoding/json"
	"os"
)

// readJSONUnlocked reads and decodes path without taking any advisory lock.
// Used for config.json and page files, which are treated as immutable once
// written.
func readJSONUnlocked(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// writeJSONExclusive truncates path and writes v under a blocking exclusive
// lock held for the duration of the write. Pretty-printed per the cache's
// on-disk format.
func writeJSONExclusive(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	locked, err := lockExclusive(path)
	if err != nil {
		return err
	}
	defer locked.close()

	if err := locked.f.Truncate(0); err != nil {
		return err
	}
	if _, err := locked.f.WriteAt(data, 0); err != nil {
		return err
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func unmarshalExpiration(data []byte, dest *Expiration) error {
	return json.Unmarshal(data, dest)
}

func marshalExpiration(e Expiration) ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
