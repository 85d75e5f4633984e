// Package config carries the per-run settings for the generator.
package config

// Config is built once from parsed flags and passed by value into the
// pipeline stages.
type Config struct {
	Component string // component identifier, e.g. "sections.hero-banner"
	BaseURL   string // CMS base URL
	Dir       string // project root for generated files
	MaxDepth  int    // nested component expansion cap
	DryRun    bool   // render and report paths without writing
	Verbose   bool   // enable debug logging
}
