package ui

// DefaultScrollThreshold is the offset past which the navbar switches to its
// solid style.
const DefaultScrollThreshold = 50

type Navbar struct {
	Open      bool
	Scrolled  bool
	Threshold int
}

func NewNavbar() Navbar { return Navbar{Threshold: DefaultScrollThreshold} }

// Toggle flips the mobile menu.
func (n Navbar) Toggle() Navbar {
	n.Open = !n.Open
	return n
}

// Close is applied after a menu link is followed.
func (n Navbar) Close() Navbar {
	n.Open = false
	return n
}

// Scroll records the current vertical offset.
func (n Navbar) Scroll(offset int) Navbar {
	n.Scrolled = offset > n.Threshold
	return n
}
