// Package ini provides an INI adapter for the config package.
//
// Keys and section names are split on a separator (default ".") into nested
// maps, so
//
//	[db.primary]
//	host = "localhost"
//	pool.size = 10
//
// decodes to {db: {primary: {host: "localhost", pool: {size: 10}}}}.
//
// Values:
//   - "quoted" or 'quoted' text is a string, kept verbatim
//   - true/on/yes and false/off/no are booleans, null/none is null
//   - integer and decimal literals are numbers
//   - anything else is a string
//   - key[] = value appends to a list
//
// Encoding writes top-level scalars first, then one [section] per top-level
// map. Strings are always double-quoted and cannot contain a double quote.
package ini
