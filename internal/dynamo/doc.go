// Package dynamo provides the shared primitives of the swarm simulation.
//
// The package defines the small value types every other package builds on:
//
//   - [Vec2]: 2D position/velocity vector in canvas space
//   - [Rand]: pluggable uniform random source
//   - [SimError]: per-trail fault wrapper carrying frame context
//
// # Randomness
//
// Production code uses [NewRand], which is unseeded unless a seed is given.
// Tests substitute [FixedRand] or [SeqRand] to pin the stochastic branches:
//
//	rng := dynamo.SeqRand{0.96, 0.5}
//	stepper := integrators.NewTrailStepper(&rng)
//
// # Thread Safety
//
// Rand values returned by [NewRand] are NOT safe for concurrent use. Each
// simulation loop owns its own source.
package dynamo
