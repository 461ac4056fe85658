// Package viz renders the landing page in the terminal.
//
// The package implements two Bubble Tea programs:
//
//   - [Page]: the full landing page (navbar, hero, features, about, contact)
//     scrolling over the animated particle background
//   - [Live]: the particle field alone with a status bar
//
// Particles are drawn on a Braille [Canvas] (2x4 dots per cell) and the page
// copy is laid out on a [Layer] composited above it, so particles show
// through wherever the page has no text. Both models advance their
// [animator.Animator] from [TickMsg] messages rather than its own goroutine.
//
// # Page Key Bindings
//
//	j/k, ↑/↓    - Scroll (or move in the open menu)
//	PgUp/PgDn   - Scroll a screen
//	g/G         - Top / bottom
//	m, Tab      - Toggle the navigation menu
//	Enter, Esc  - Follow the selected menu link / close the menu
//	1-9         - Jump to a section
//	+/-         - Change the particle count
//	P           - Cycle palettes
//	R           - Re-seed the particle field
//	T           - Cycle color themes
//	Q           - Quit
//
// # Live Key Bindings
//
//	Space       - Pause/Resume
//	G           - Toggle GIF recording
//	?           - Centroid chart
//	+/-, P, R, T, Q as above
package viz
