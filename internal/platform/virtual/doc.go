// Package virtual provides an in-process reference target application.
//
// A YAML fixture declares a window with a menu bar and text controls. The
// backend implements every platform interface over that model: menus reveal
// submenus only after Expand, text positions are grapheme clusters, and
// layout is a monospace grid so geometry queries are deterministic.
//
// Importing the package registers it as the platform provider.
package virtual
