// Package catalog provides the read-only product listing consumed by the
// conversation engine. The file-backed implementation re-reads its YAML
// source on a refresh interval, so the catalog stays reasonably fresh
// without any cache invalidation protocol.
package catalog
