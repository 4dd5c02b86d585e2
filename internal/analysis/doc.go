// Package analysis characterizes recorded iris motion.
//
//   - [Spectrum] and [DominantFrequency]: FFT of a uniformly sampled trace
//   - [Wobble]: a [sim.Metric] reporting how fast an iris sloshes
//   - [Portrait]: the path an iris traces across its socket, drawn as text
//
// A jiggly host tends to drive the irises at its own frequency:
//
//	hz := analysis.DominantFrequency(result.Column(1), cfg.Dt)
package analysis
