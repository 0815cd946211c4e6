package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	titleSize       = 16
	labelSize       = 12
	tickSize        = 10
	attributionSize = 8
	tickLength      = 5
	targetTicks     = 5
)

// faces - набор начертаний для одной отрисовки. font.Face не потокобезопасен,
// поэтому начертания создаются на каждый вызов Render.
type faces struct {
	title, label, tick, attribution font.Face
}

func newFaces(f *opentype.Font, dpi float64) (*faces, error) {
	mk := func(size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
	}

	var (
		fs  faces
		err error
	)
	if fs.title, err = mk(titleSize); err != nil {
		return nil, err
	}
	if fs.label, err = mk(labelSize); err != nil {
		return nil, err
	}
	if fs.tick, err = mk(tickSize); err != nil {
		return nil, err
	}
	if fs.attribution, err = mk(attributionSize); err != nil {
		return nil, err
	}
	return &fs, nil
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.title, f.label, f.tick, f.attribution} {
		if face != nil {
			_ = face.Close()
		}
	}
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText рисует строку так, что (x, y) - левый край базовой линии
func drawText(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCentered центрирует строку по x относительно cx
func drawCentered(dst draw.Image, face font.Face, s string, cx, y int, c color.Color) {
	drawText(dst, face, s, cx-textWidth(face, s)/2, y, c)
}

// drawVertical рисует строку, повёрнутую на 90° против часовой стрелки, с центром по y в cy.
// x - левый край повёрнутого текста.
func drawVertical(dst *image.RGBA, face font.Face, s string, x, cy int, c color.Color) {
	m := face.Metrics()
	w := textWidth(face, s)
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return
	}

	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	drawText(tmp, face, s, 0, m.Ascent.Ceil(), c)

	rot := image.NewRGBA(image.Rect(0, 0, h, w))
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			rot.SetRGBA(ty, w-1-tx, tmp.RGBAAt(tx, ty))
		}
	}

	r := image.Rect(x, cy-w/2, x+h, cy-w/2+w)
	draw.Draw(dst, r, rot, image.Point{}, draw.Over)
}

// niceStep подбирает "круглый" шаг делений (1, 2 или 5 × 10^k) для диапазона span
func niceStep(span float64, target int) float64 {
	if span <= 0 || target <= 0 {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag

	switch {
	case norm < 1.5:
		return mag
	case norm < 3:
		return 2 * mag
	case norm < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// ticks возвращает значения делений внутри [min, max]
func ticks(min, max float64, target int) []float64 {
	step := niceStep(max-min, target)
	start := math.Ceil(min/step) * step

	var out []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > max+step*1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

// formatTick печатает значение с числом знаков, достаточным для шага
func formatTick(v, step float64) string {
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	// избавляемся от "-0"
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
