// Package dynamo provides the core types for integrating ordinary
// differential equations of the form dy/dt = f(t, y).
//
// The package defines:
//
//   - [State]: phase vector of a scalar ODE, y = [x, x', ..., x^(n-1)]
//   - [ScalarFunc] and [PhaseFunc]: right-hand side calling conventions
//   - [Equation]: a named higher-order ODE in phase form
//   - [Trajectory]: recorded solution, one column per time point
//
// # Phase convention
//
// A PhaseFunc returns only the highest derivative. The integrator builds
// the full derivative vector by shifting the phase vector:
//
//	dy/dt = [y[1], y[2], ..., y[n-1], f(t, y)]
//
// so a single n-th order equation becomes a first-order system of n
// equations. For n == 1 this reduces to dy/dt = [f(t, y)].
//
// # Example
//
//	euler := integrators.NewEuler()
//	traj, err := euler.IntegratePhase(func(t float64, y dynamo.State) float64 {
//	    return -y[0]
//	}, dynamo.State{1, 0}, 0, 10, 1001)
package dynamo
