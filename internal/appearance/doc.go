// Package appearance owns the viewer's theme and light/dark mode. A
// Controller loads the persisted preference, applies it as classes on the
// document root, renders the searchable theme picker and reacts to the
// picker's click, input and keydown events.
package appearance
