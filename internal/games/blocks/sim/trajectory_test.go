package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTile    = 40.0
	testSpeed   = 12.0
	testGravity = 0.6
)

func TestSolveDirection(t *testing.T) {
	vx, _ := Solve(100, 0, 300, 400, testSpeed, testGravity)
	assert.Equal(t, testSpeed, vx)

	vx, _ = Solve(300, 0, 100, 400, testSpeed, testGravity)
	assert.Equal(t, -testSpeed, vx)
}

func TestSolveZeroDisplacement(t *testing.T) {
	vx, vy := Solve(200, 0, 200, 400, testSpeed, testGravity)

	tt := 1.0 / testSpeed
	assert.Equal(t, testSpeed, vx, "equal x counts as a rightward launch")
	assert.InDelta(t, (400-0.5*testGravity*tt*tt)/tt, vy, 1e-9)
	assert.False(t, math.IsInf(vy, 0))
	assert.False(t, math.IsNaN(vy))
}

func TestSolveVertical(t *testing.T) {
	// Level target: the arc must start upward to come back down.
	_, vy := Solve(0, 400, 240, 400, testSpeed, testGravity)
	assert.Less(t, vy, 0.0)

	// Target well below on a short hop: starts downward.
	_, vy = Solve(0, 0, 24, 700, testSpeed, testGravity)
	assert.Greater(t, vy, 0.0)
}

func TestTrajectoryReachesTarget(t *testing.T) {
	launches := []Point{Pt(0, 0), Pt(300, 0), Pt(560, 40), Pt(0, 380)}
	targets := []Point{Pt(40, 760), Pt(220, 500), Pt(580, 780), Pt(130, 120), Pt(400, 300), Pt(5, 790)}

	for _, from := range launches {
		for _, to := range targets {
			if from.X == to.X {
				continue
			}
			vx, vy := Solve(from.X, from.Y, to.X, to.Y, testSpeed, testGravity)
			p := Projectile{X: from.X, Y: from.Y, VX: vx, VY: vy}

			crossed := false
			for range 1000 {
				prev := p
				p = p.Integrate(testGravity)
				if (prev.X-to.X)*(p.X-to.X) > 0 {
					continue
				}
				// Interpolate y at the crossing within this tick
				f := (to.X - prev.X) / (p.X - prev.X)
				y := prev.Y + f*(p.Y-prev.Y)
				assert.InDelta(t, to.Y, y, testTile, "from %v to %v", from, to)
				crossed = true
				break
			}
			require.True(t, crossed, "from %v to %v never crossed target x", from, to)
		}
	}
}

func TestTimeToTarget(t *testing.T) {
	assert.InDelta(t, 10.0, TimeToTarget(0, 120, testSpeed), 1e-9)
	assert.InDelta(t, 10.0, TimeToTarget(120, 0, testSpeed), 1e-9)
	assert.InDelta(t, 1.0/testSpeed, TimeToTarget(50, 50, testSpeed), 1e-9)
}
