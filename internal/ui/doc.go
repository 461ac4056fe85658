// Package ui holds the small boolean state of the page chrome: whether the
// navigation menu is open, whether the page has scrolled past the header, and
// which sections have finished their entrance reveal.
//
// Every type is a value with pure transition methods, so renderers can keep
// them in their own models and tests need no timers.
package ui
