// Package models provides named scalar ODEs in phase form.
//
// Each model implements [dynamo.Equation]: Order reports the length of the
// phase vector and Eval returns its highest derivative. First-order models
// return dy/dt directly; second-order models return the acceleration of
// y = [x, x'].
//
//   - [Decay]: dy/dt = -k*y
//   - [Constant]: dy/dt = c
//   - [Harmonic]: x'' = -omega^2 * x
//   - [Pendulum]: theta'' = -(g/L) sin(theta) - b*theta'
//   - [VanDerPol]: x'' = mu*(1-x^2)*x' - x
//   - [Duffing]: x'' = -delta*x' - alpha*x - beta*x^3 + gamma*cos(omega*t)
//
// All models also implement [dynamo.Configurable].
package models
