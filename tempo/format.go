package tempo

import "fmt"

// FormatTime renders the delay time control for display: the division
// label when tempo sync is active, the millisecond value otherwise. It
// is a pure function of its inputs so any display layer can call it
// without sharing state with the engine.
func FormatTime(ms float64, syncActive bool) string {
	if syncActive {
		return Quantize(Normalized(ms)).Label
	}
	return fmt.Sprintf("%.1f ms", ms)
}
