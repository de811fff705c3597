// Package config loads and stores configuration trees through format adapters.
//
// The package uses an interface-based design with two extension points:
//   - Adapter: converts one textual format (INI, YAML, Lua, TOML) to and from a tree
//   - DataFetcher: retrieves raw config data (file, memory, etc.)
//
// A Loader holds a set of adapters and picks one by file name, so the same
// calls load and store any supported format:
//
//	loader, err := config.NewLoader(slog.Default(), ini.New(), yaml.New())
//	root, err := loader.LoadFile("app.ini")
//	err = loader.DumpFile("app.yaml", root)
//
// # Path Navigation
//
// The Provider function accepts a path parameter that targets a specific
// section of the loaded tree. Paths use colon (:) as the separator:
//
//	"api:permissions"           -> config["api"]["permissions"]
//	"database:connection"       -> config["database"]["connection"]
//	""                          -> entire document
//
// Provider returns a constructor that fits an Fx container:
//
//	fx.Provide(config.Provider("app.ini", "database"))
package config
