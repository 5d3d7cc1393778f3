package wrapped

import "math"

// quantizeScore maps a raw [0,1] trait score to the 0-100 wire scale. Every
// trait goes through this exact function so the encoder and any test fixture
// generator cannot drift.
func quantizeScore(score float64) int {
	n := int(math.Round(score * 100))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// QuantizeHeatmap maps raw slot counts onto the 0-15 scale, normalized to
// the busiest slot. A nonzero input slot always stays nonzero, so activity
// is never erased by quantization. The result is always HeatmapSlots long.
func QuantizeHeatmap(hm []int) []int {
	out := make([]int, HeatmapSlots)
	max := 0
	for i := 0; i < len(hm) && i < HeatmapSlots; i++ {
		if hm[i] > max {
			max = hm[i]
		}
	}
	if max == 0 {
		return out
	}
	for i := 0; i < len(hm) && i < HeatmapSlots; i++ {
		v := hm[i]
		if v == 0 {
			continue
		}
		q := int(math.Round(float64(v) * 15 / float64(max)))
		if q < 1 {
			q = 1
		}
		out[i] = q
	}
	return out
}
