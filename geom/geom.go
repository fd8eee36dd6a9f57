// Package geom provides analytic, time-dependent parametrised
// geometries. A geometry maps an intrinsic (Lagrangian) coordinate to
// a spatial (Eulerian) position at a given time; adaptive meshing uses
// such objects as moving boundaries to refine towards.
package geom

// Object is a parametrised geometry evolving in time. Implementations
// map an intrinsic coordinate zeta to a spatial position x together
// with the first two time derivatives of the motion. Time enters every
// query explicitly; an Object carries no clock of its own.
type Object interface {
	// NLagrangian returns the number of intrinsic coordinates.
	NLagrangian() int

	// NEulerian returns the number of spatial coordinates.
	NEulerian() int

	// Position evaluates x(zeta) at the given time. zeta must have
	// length NLagrangian and x length NEulerian.
	Position(time float64, zeta, x []float64)

	// Veloc evaluates the velocity dx/dt at the given time.
	Veloc(time float64, zeta, v []float64)

	// Accel evaluates the acceleration d2x/dt2 at the given time.
	Accel(time float64, zeta, a []float64)
}
