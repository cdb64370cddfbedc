// Package analysis summarises sampled orbits.
//
//   - [Summarize]: pericentre, apocentre, eccentricity, zmax and radial frequency
//   - [DominantFrequency]: strongest non-zero frequency of a uniformly sampled series
//   - [NewPortrait]: 2D phase-space trajectories rendered as text
//   - [Section]: surface of section from upward crossings of a coordinate
//
// States are cylindrical [R, vR, vT, z, vz, phi] rows, as stored by the
// orbit runner.
package analysis
