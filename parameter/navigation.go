package parameter

// Navigation - Distance Field Overlay
const (
	// NavOverlayModulo wraps overlay hop counts to a single digit
	NavOverlayModulo = 10

	// NavOverlayUnreached is drawn on open cells the pursuit field cannot reach
	NavOverlayUnreached = '?'
)
