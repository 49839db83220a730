// Package config defines the format-agnostic settings model for the
// application and the Loader interface that fills it from a settings file.
//
// `config.Settings` is the single source of truth for the parser options and
// the publisher. Concrete loaders, such as the HCL one, live in separate
// packages.
package config
