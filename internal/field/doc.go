// Package field implements the animated particle background.
//
// A [Field] owns a fixed set of particles drifting inside a cube. Every call
// to [Field.Tick] advances the simulation by exactly one logical step:
//
//   - integrate each position by its velocity (Euler, no delta time)
//   - reflect the velocity component of any axis that left the cube
//   - rebuild the proximity edges between particles closer than the
//     connect distance
//
// The edge pass is a plain O(N^2) pair scan. At the default 150 particles
// that is 11,175 checks per frame. With Config.Workers > 1 the rows are split
// across goroutines and the results joined in row order.
//
// [Sway] is the eased group rotation the renderer applies to the whole point
// cloud in response to pointer movement. It is not part of particle state.
//
// # Thread Safety
//
// Field and Sway are NOT thread-safe. Drive them from a single frame loop;
// pointer input should reach Sway through the loop (see package pointer).
package field
