package chipcore

import "fmt"

// Vec2i is an integer tile coordinate.
type Vec2i struct {
	X, Y int32
}

func V2(x, y int32) Vec2i { return Vec2i{X: x, Y: y} }

func (a Vec2i) Add(b Vec2i) Vec2i { return Vec2i{X: a.X + b.X, Y: a.Y + b.Y} }
func (a Vec2i) Sub(b Vec2i) Vec2i { return Vec2i{X: a.X - b.X, Y: a.Y - b.Y} }

func (a Vec2i) String() string { return fmt.Sprintf("(%d,%d)", a.X, a.Y) }

// Compass is one of the four cardinal step directions.
type Compass uint8

const (
	Up Compass = iota
	Left
	Down
	Right
)

func (c Compass) String() string {
	switch c {
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Right:
		return "Right"
	default:
		return "Invalid"
	}
}

// ToVec returns the unit displacement for this direction.
func (c Compass) ToVec() Vec2i {
	switch c {
	case Up:
		return Vec2i{X: 0, Y: -1}
	case Left:
		return Vec2i{X: -1, Y: 0}
	case Down:
		return Vec2i{X: 0, Y: 1}
	case Right:
		return Vec2i{X: 1, Y: 0}
	default:
		panic(fmt.Errorf("chipcore: invalid compass value %d", c))
	}
}

// TurnAround returns the opposite direction.
func (c Compass) TurnAround() Compass {
	switch c {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		panic(fmt.Errorf("chipcore: invalid compass value %d", c))
	}
}
