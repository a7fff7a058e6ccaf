// Package shape generates construction point clouds. The coordination
// core is agnostic to where target positions come from; this package is
// the stock generator for uppercase letters.
package shape

import (
	"fmt"
	"math"

	"github.com/swarmworks/alphaswarm/model"
)

const (
	buildScale = 1.0
	spacing    = 1.2
	worldScale = 15.0 // 1:15 blow-up to simulation coordinates
)

// LetterPoints returns the deduplicated target positions for a letter.
// Only "A" has a dedicated outline; any other letter falls back to a
// rectangle so a run always has something to build.
func LetterPoints(letter rune) []model.Vec3 {
	var pts []model.Vec3
	s := buildScale * spacing

	if letter == 'A' {
		height := 8 * s
		halfWidth := 3 * s

		// Legs.
		for i := 0; i <= 8; i++ {
			t := float64(i) / 8
			y := -height/2 + t*height
			pts = append(pts,
				model.Vec3{X: -halfWidth * (1 - t), Y: y},
				model.Vec3{X: halfWidth * (1 - t), Y: y},
			)
		}
		// Crossbar.
		for i := -2; i <= 2; i++ {
			pts = append(pts, model.Vec3{X: float64(i) * s})
		}
		// Interior fill.
		for rx := -1; rx <= 1; rx++ {
			for ry := 1; ry <= 3; ry++ {
				pts = append(pts, model.Vec3{
					X: float64(rx) * s,
					Y: float64(ry)*s - height/2 + 2*s,
				})
			}
		}
	} else {
		w := 8 * s
		h := 10 * s
		const steps = 14
		for i := 0; i <= steps; i++ {
			t := float64(i) / steps
			pts = append(pts,
				model.Vec3{X: -w/2 + t*w, Y: -h / 2},
				model.Vec3{X: -w/2 + t*w, Y: h / 2},
				model.Vec3{X: -w / 2, Y: -h/2 + t*h},
				model.Vec3{X: w / 2, Y: -h/2 + t*h},
			)
		}
	}

	pts = dedupe(pts)
	for i := range pts {
		pts[i] = pts[i].Scale(worldScale)
	}
	return pts
}

// dedupe drops points that collide after rounding to two decimals;
// outline segments share corners.
func dedupe(pts []model.Vec3) []model.Vec3 {
	seen := make(map[string]bool, len(pts))
	var out []model.Vec3
	for _, p := range pts {
		key := fmt.Sprintf("%.2f,%.2f", round2(p.X), round2(p.Y))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // collapse negative zero so the key is stable
	}
	return r
}
