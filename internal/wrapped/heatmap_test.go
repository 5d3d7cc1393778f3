package wrapped

import (
	"testing"
	"time"
)

func TestComputeHeatmapSlotIndexing(t *testing.T) {
	// 2025-03-10 is a Monday.
	monday9am := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	sunday23 := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)

	hm := ComputeHeatmap([]SessionRecord{
		{Start: monday9am, Messages: 12},
		{Start: sunday23, Messages: 3},
	})

	if len(hm) != HeatmapSlots {
		t.Fatalf("heatmap length = %d, want %d", len(hm), HeatmapSlots)
	}
	if hm[0*24+9] != 12 {
		t.Fatalf("monday 9h slot = %d, want 12", hm[9])
	}
	if hm[6*24+23] != 3 {
		t.Fatalf("sunday 23h slot = %d, want 3", hm[6*24+23])
	}
}

func TestComputeHeatmapAttributesWholeSessionToStartHour(t *testing.T) {
	start := time.Date(2025, 6, 4, 14, 55, 0, 0, time.UTC) // Wednesday
	hm := ComputeHeatmap([]SessionRecord{{Start: start, Messages: 40}})

	if hm[2*24+14] != 40 {
		t.Fatalf("start slot = %d, want all 40 messages", hm[2*24+14])
	}
	total := 0
	for _, v := range hm {
		total += v
	}
	if total != 40 {
		t.Fatalf("heatmap total = %d, want 40", total)
	}
}

func TestComputeHeatmapEmpty(t *testing.T) {
	hm := ComputeHeatmap(nil)
	if len(hm) != HeatmapSlots {
		t.Fatalf("heatmap length = %d, want %d", len(hm), HeatmapSlots)
	}
	for i, v := range hm {
		if v != 0 {
			t.Fatalf("slot %d = %d, want 0", i, v)
		}
	}
}

func TestQuantizeHeatmap(t *testing.T) {
	hm := make([]int, HeatmapSlots)
	hm[4] = 100
	hm[5] = 1
	hm[6] = 50

	q := QuantizeHeatmap(hm)
	if q[4] != 15 {
		t.Fatalf("busiest slot = %d, want 15", q[4])
	}
	if q[5] < 1 {
		t.Fatalf("nonzero slot quantized to %d, must stay nonzero", q[5])
	}
	if q[6] != 8 { // round(50*15/100)
		t.Fatalf("mid slot = %d, want 8", q[6])
	}
	if q[0] != 0 {
		t.Fatalf("empty slot = %d, want 0", q[0])
	}
}

func TestQuantizeHeatmapAllZero(t *testing.T) {
	q := QuantizeHeatmap(make([]int, HeatmapSlots))
	for i, v := range q {
		if v != 0 {
			t.Fatalf("slot %d = %d, want 0", i, v)
		}
	}
}
