package scene

// Chrome is the 2D interface layer drawn over the 3D view: a navigation bar
// and a centered title. Animatable fields are plain float32 so tweens can
// drive them directly.
type Chrome struct {
	Brand string
	Links []string
	Title string

	// NavOffset is the nav bar's vertical offset as a fraction of its own
	// height: -1 is fully hidden above the top edge, 0 is in place.
	NavOffset float32
	// TitleOpacity is in [0, 1].
	TitleOpacity float32
}

func NewChrome(brand string, links []string, title string) *Chrome {
	return &Chrome{
		Brand:        brand,
		Links:        append([]string(nil), links...),
		Title:        title,
		TitleOpacity: 1,
	}
}
