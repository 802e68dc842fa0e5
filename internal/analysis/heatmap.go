package analysis

import (
	"fmt"

	"github.com/abhisek/keyz/internal/typing"
)

// HeatmapCell maps one letter to an error intensity and a display color.
// Purely for visual consumption — nothing downstream branches on it.
type HeatmapCell struct {
	Letter    string  `json:"letter"`
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color"`
}

// Heatmap endpoints: low-error letters render green, high-error red.
var (
	coolColor = [3]int{0x22, 0xc5, 0x5e}
	hotColor  = [3]int{0xef, 0x44, 0x44}
)

// GenerateLetterHeatmap converts letter analytics into heatmap cells with
// errorIntensity = 1 - accuracy/100, preserving input order.
func GenerateLetterHeatmap(letters []typing.LetterAnalytics) []HeatmapCell {
	cells := make([]HeatmapCell, 0, len(letters))
	for _, l := range letters {
		intensity := 1 - float64(l.Accuracy)/100
		if intensity < 0 {
			intensity = 0
		}
		if intensity > 1 {
			intensity = 1
		}
		cells = append(cells, HeatmapCell{
			Letter:    l.Letter,
			Intensity: intensity,
			Color:     heatColor(intensity),
		})
	}
	return cells
}

// heatColor linearly interpolates between the cool and hot endpoints.
func heatColor(intensity float64) string {
	var rgb [3]int
	for i := range rgb {
		rgb[i] = coolColor[i] + int(intensity*float64(hotColor[i]-coolColor[i]))
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
