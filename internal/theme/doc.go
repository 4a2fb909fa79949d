// Package theme holds the bundled theme catalog and the light/dark mode enum
// used by the patch viewer. The catalog is embedded at build time and is
// never modified at runtime; user preference only ever selects from it.
package theme
