// Package portal reads the desktop colour scheme preference from the
// org.freedesktop.portal.Settings D-Bus interface. It is used to resolve
// the "system" default mode when no preference has been stored.
package portal
