// Package metrics summarizes integrated trajectories: energy drift for
// conservative models, the share of bounded states, and the peak state norm.
package metrics
