// Package model defines the snapshot types renderers consume. A fixture page
// is built from live widgets (see pkg/widgets) and flattened into a Page whose
// columns hold Field values carrying the caption, option list, selection and
// error indicator state of every widget. Snapshots are plain data with JSON and
// YAML tags so renderers and golden tests can serialise them directly.
package model
