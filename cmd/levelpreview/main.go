// Command levelpreview rasterizes a level JSON file's terrain grid to a flat
// PNG for log/CI artifact inspection. It is a debug dump, not a renderer: no
// camera, no animation, no entity sprites beyond a marker dot for the
// player's start tile.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"chipsim/internal/chipcore"

	"github.com/fogleman/gg"
)

const tileSize = 12

func main() {
	in := flag.String("in", "", "path to a level JSON file")
	out := flag.String("out", "level.png", "output PNG path")
	flag.Parse()

	if *in == "" {
		log.Fatal("🧩 -in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("🧩 read %q: %v", *in, err)
	}

	var dto chipcore.LevelDto
	if err := json.Unmarshal(data, &dto); err != nil {
		log.Fatalf("🧩 parse %q: %v", *in, err)
	}

	state, err := chipcore.ParseLevel(dto)
	if err != nil {
		log.Fatalf("🧩 build level %q: %v", *in, err)
	}
	field := state.MustField()

	dc := gg.NewContext(int(field.Width)*tileSize, int(field.Height)*tileSize)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for y := int32(0); y < field.Height; y++ {
		for x := int32(0); x < field.Width; x++ {
			t := field.GetTerrain(chipcore.V2(x, y))
			r, g, b := terrainColor(t)
			dc.SetRGB(r, g, b)
			dc.DrawRectangle(float64(x*tileSize), float64(y*tileSize), tileSize, tileSize)
			dc.Fill()
		}
	}

	state.Entities.Iter(func(e *chipcore.Entity) {
		if e.Kind != chipcore.KindPlayer {
			return
		}
		cx := float64(e.Pos.X)*tileSize + tileSize/2
		cy := float64(e.Pos.Y)*tileSize + tileSize/2
		dc.SetRGB(1, 1, 1)
		dc.DrawCircle(cx, cy, tileSize/3)
		dc.Fill()
	})

	if err := dc.SavePNG(*out); err != nil {
		log.Fatalf("🧩 save %q: %v", *out, err)
	}
	log.Printf("🧩 wrote %s (%dx%d tiles)", *out, field.Width, field.Height)
}

// terrainColor maps a Terrain to a flat preview color. Walls and the other
// IsWall tiles (locks included) are dark, floor is light gray, the exit is
// green, water/fire/ice/force-floor get their natural hues, and everything
// else (buttons, teleports, traps, ...) gets a mid gray placeholder —
// precise per-terrain art is outside this tool's scope.
func terrainColor(t chipcore.Terrain) (r, g, b float64) {
	switch {
	case t == chipcore.Wall || t.IsWall():
		return 0.15, 0.15, 0.15
	case t == chipcore.Floor:
		return 0.8, 0.8, 0.8
	case t == chipcore.Water:
		return 0.1, 0.3, 0.9
	case t == chipcore.Fire:
		return 0.9, 0.3, 0.1
	case t == chipcore.Exit:
		return 0.2, 0.9, 0.2
	case t >= chipcore.Ice && t <= chipcore.IceSE:
		return 0.6, 0.9, 1.0
	case t >= chipcore.ForceN && t <= chipcore.ForceRandom:
		return 0.9, 0.9, 0.3
	default:
		return 0.5, 0.5, 0.5
	}
}
