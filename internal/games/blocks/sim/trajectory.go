package sim

import "math"

// minDisplacement substitutes a zero horizontal launch-to-target distance.
const minDisplacement = 1.0

// Solve returns the launch velocity that carries a projectile from the launch
// point through the target under constant gravity. The horizontal speed is
// fixed; its sign points toward the target. The vertical component solves
//
//	targetY = launchY + vy*t + gravity*t²/2,  t = |targetX-launchX| / speed
//
// speed must be positive. Arcs that leave the play field are not rejected.
func Solve(launchX, launchY, targetX, targetY, speed, gravity float64) (vx, vy float64) {
	vx = speed
	if targetX < launchX {
		vx = -speed
	}

	t := TimeToTarget(launchX, targetX, speed)
	vy = (targetY - launchY - 0.5*gravity*t*t) / t
	return vx, vy
}

// TimeToTarget returns the number of ticks (fractional) a projectile launched
// at the given horizontal speed needs to cover the horizontal distance.
func TimeToTarget(launchX, targetX, speed float64) float64 {
	dx := math.Abs(targetX - launchX)
	if dx == 0 {
		dx = minDisplacement
	}
	return dx / speed
}
