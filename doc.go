// Package conf wires configuration loading into an Fx application.
//
// NewApp builds an Fx container that supplies a slog logger and a
// *config.Loader holding one adapter per supported format. Modules passed
// with WithModules can depend on either, and config.Provider turns a file
// section into an injectable *tree.Map.
package conf
