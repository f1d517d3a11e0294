// Copyright (c) 2026 Catalog. All rights reserved.

package cache

import (
	"fmt"
	"path/filepath"
)

const (
	expirationFile = "expiration.json"
	configFile     = "config.json"
)

func (m *Manager) entryDir(key string) string {
	return filepath.Join(m.baseDir, key)
}

func (m *Manager) expirationPath(key string) string {
	return filepath.Join(m.entryDir(key), expirationFile)
}

func (m *Manager) configPath(key string) string {
	return filepath.Join(m.entryDir(key), configFile)
}

// pagePath names a single page file: <prefix><page>.json, e.g.
// "DESC_POSTDATE.3.json".
func (m *Manager) pagePath(key, prefix string, page int) string {
	return filepath.Join(m.entryDir(key), fmt.Sprintf("%s%d.json", prefix, page))
}
