package render

import (
	"image/color"
	"math"
)

// viridisAnchors - опорные точки палитры viridis с шагом 1/8
var viridisAnchors = [...]color.RGBA{
	{68, 1, 84, 255},
	{71, 45, 123, 255},
	{59, 82, 139, 255},
	{44, 114, 142, 255},
	{33, 145, 140, 255},
	{40, 174, 128, 255},
	{94, 201, 98, 255},
	{173, 220, 48, 255},
	{253, 231, 37, 255},
}

// Viridis возвращает цвет палитры для t в [0, 1] (линейная интерполяция между опорными точками)
func Viridis(t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return viridisAnchors[0]
	}
	last := len(viridisAnchors) - 1
	if t >= 1 {
		return viridisAnchors[last]
	}

	pos := t * float64(last)
	i := int(pos)
	f := pos - float64(i)
	a, b := viridisAnchors[i], viridisAnchors[i+1]

	return color.RGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: 255,
	}
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

// tierFraction - положение i-го из n полигонов на шкале палитры
func tierFraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// withAlpha возвращает цвет без премультипликации с заданной прозрачностью
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}
}
