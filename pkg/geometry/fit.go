package geometry

// FitToWidth scales s to the target width preserving its aspect ratio. A
// size already narrower than the target is returned unchanged unless scaleUp
// is set.
func FitToWidth(s Size, width float64, scaleUp bool) Size {
	if scaleUp || s.Width > width {
		s = SafeSize(s)
		return Size{Width: width, Height: width * s.Height / s.Width}
	}
	return s
}

// FitToHeight is the height-keyed counterpart of FitToWidth.
func FitToHeight(s Size, height float64, scaleUp bool) Size {
	if scaleUp || s.Height > height {
		s = SafeSize(s)
		return Size{Width: height * s.Width / s.Height, Height: height}
	}
	return s
}

// FitToMaxDim fits the longer side of s to dim.
func FitToMaxDim(s Size, dim float64, scaleUp bool) Size {
	if s.Height > s.Width {
		return FitToHeight(s, dim, scaleUp)
	}
	return FitToWidth(s, dim, scaleUp)
}
