package wrapped

// RLEEncode collapses consecutive equal values into a flat
// [value, runLength, value, runLength, ...] sequence.
func RLEEncode(values []int) []int {
	if len(values) == 0 {
		return []int{}
	}
	out := make([]int, 0, len(values))
	current, run := values[0], 1
	for _, v := range values[1:] {
		if v == current {
			run++
			continue
		}
		out = append(out, current, run)
		current, run = v, 1
	}
	return append(out, current, run)
}

// RLEDecode expands a flat pair sequence back to the original values. A
// trailing half-pair is ignored.
func RLEDecode(pairs []int) []int {
	var out []int
	for i := 0; i+1 < len(pairs); i += 2 {
		v, run := pairs[i], pairs[i+1]
		for n := 0; n < run; n++ {
			out = append(out, v)
		}
	}
	return out
}

// rleIfSmaller returns the RLE form and true when it is strictly shorter
// than the input, otherwise the input unchanged and false. The flag travels
// on the wire as the discriminator the decoder switches on.
func rleIfSmaller(values []int) ([]int, bool) {
	encoded := RLEEncode(values)
	if len(encoded) < len(values) {
		return encoded, true
	}
	return values, false
}
