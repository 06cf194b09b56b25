// Package physics provides the geometry and forces of the heart swarm.
//
//   - [HeartCurve]: samples the closed heart curve into a [Path]
//   - [Path]: cyclic, modulo-indexed sequence of curve points
//   - [ForceModel]: steering toward a curve point plus pointer attraction
//
// # Cyclic Addressing
//
// A [Path] is a closed loop; every index is taken modulo its length, so
// callers never index the underlying slice directly:
//
//	path := physics.HeartCurve(64, dynamo.Vec2{X: 640, Y: 360})
//	p, ok := path.At(leader.Target + 1)
package physics
