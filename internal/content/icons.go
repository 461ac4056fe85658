package content

// Glyph returns a terminal stand-in for a named icon.
func Glyph(icon string) string {
	switch icon {
	case "check-circle":
		return "✔"
	case "leaf":
		return "❦"
	case "dollar-sign":
		return "$"
	case "sparkles":
		return "✦"
	case "instagram":
		return "◎"
	case "message-circle":
		return "✆"
	case "shopping-cart":
		return "⛒"
	case "menu":
		return "≡"
	case "close":
		return "✕"
	}
	return "•"
}

// IconColor is the accent used for a feature icon.
func IconColor(icon string) string {
	switch icon {
	case "check-circle":
		return "#9333EA"
	case "leaf":
		return "#16A34A"
	case "dollar-sign":
		return "#CA8A04"
	case "sparkles":
		return "#DB2777"
	}
	return "#A855F7"
}
