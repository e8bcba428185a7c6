package service

import "github.com/agloo/themer/internal/model"

// GatedSentinel is the ranking key given to pairs whose luminance differs by
// more than the gating threshold. Real hue distances never exceed 2.
const GatedSentinel = 2048.0

// Luminance is a brightness proxy: the plain channel sum.
func Luminance(c model.RGB) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func LuminanceDistance(a, b model.RGB) float64 {
	d := float64(Luminance(a) - Luminance(b))
	return d * d
}

func EuclideanDistance(a, b model.RGB) float64 {
	dr := float64(int(a.R) - int(b.R))
	dg := float64(int(a.G) - int(b.G))
	db := float64(int(a.B) - int(b.B))
	return dr*dr + dg*dg + db*db
}

// HueRatio returns each channel's share of the channel sum. Black has no
// hue and maps to (0, 0, 0).
func HueRatio(c model.RGB) [3]float64 {
	sum := float64(Luminance(c))
	if sum == 0 {
		return [3]float64{}
	}
	return [3]float64{float64(c.R) / sum, float64(c.G) / sum, float64(c.B) / sum}
}

func HueDistance(a, b model.RGB) float64 {
	ra := HueRatio(a)
	rb := HueRatio(b)
	var d float64
	for i := range ra {
		diff := ra[i] - rb[i]
		d += float64(diff * diff)
	}
	return d
}

// GatedHueDistance ranks x against y by hue, unless their luminance
// distance exceeds threshold, in which case it returns GatedSentinel.
func GatedHueDistance(x, y model.RGB, threshold float64) float64 {
	if LuminanceDistance(x, y) > threshold {
		return GatedSentinel
	}
	return HueDistance(x, y)
}
