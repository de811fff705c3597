// Package yaml provides a YAML adapter for the config package.
//
// This package uses github.com/goccy/go-yaml with ordered maps, so the key
// order of a document is kept when it is decoded and encoded again. NEON
// block documents (.neon) share the YAML block syntax for mappings,
// sequences and scalars and are handled by the same adapter.
//
// Usage:
//
//	adapter := yaml.New()
//	root, err := adapter.Decode(data)
//	section, err := adapter.DecodePath(data, "api:permissions")
//
// The adapter implements config.PathDecoder, so config.Loader.LoadSection
// reads a section through the YAML path instead of decoding the whole tree.
//
// Path Conversion:
//   - Empty path "" -> decode entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api:permissions" -> "$.api.permissions"
package yaml
