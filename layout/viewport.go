package layout

// Width breakpoints for the scale profile.
const (
	// TinyWidth is the upper bound (exclusive) of very narrow phones.
	TinyWidth = 360
	// PhoneWidth is the upper bound (exclusive) of regular phones.
	PhoneWidth = 500
	// TabletWidth is the upper bound (exclusive) of tablets; at or above it the
	// garden is drawn at its authored size.
	TabletWidth = 768
)

// ShortHeight is the height below which every scale is reduced by ShortFactor.
const (
	ShortHeight = 700
	ShortFactor = 0.9
)

// DensityWidth splits ambient counts into narrow, medium and wide buckets.
const (
	DensityNarrow = 400
	DensityMedium = 768
)

// Viewport is the size of the drawing surface in pixels. It is the only input
// to responsive decisions and is re-read on every layout pass.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Scale multiplies the authored flower sizes for the current viewport.
type Scale float64

// DeriveScale maps a viewport to its scale. Width picks a bucket
// (<360: 1.1, <500: 1.3, <768: 1.1, otherwise 1.0), then a height under 700
// multiplies the bucket value by 0.9. Non-positive sizes are not rejected; they
// fall into the narrowest bucket.
func DeriveScale(v Viewport) Scale {
	var s float64
	switch {
	case v.Width < TinyWidth:
		s = 1.1
	case v.Width < PhoneWidth:
		s = 1.3
	case v.Width < TabletWidth:
		s = 1.1
	default:
		s = 1.0
	}
	if v.Height < ShortHeight {
		s *= ShortFactor
	}
	return Scale(s)
}

// Of returns x multiplied by the scale.
func (s Scale) Of(x float64) float64 {
	return x * float64(s)
}

// Bucket returns the density bucket for a width: 0 narrow, 1 medium, 2 wide.
func Bucket(width float64) int {
	switch {
	case width < DensityNarrow:
		return 0
	case width < DensityMedium:
		return 1
	default:
		return 2
	}
}
