// Package motion animates the blobs of the gooey menu toggle.
//
// A [State] holds up to [MaxBlobs] blobs. Each frame the host calls
// [State.Update] with the open/closed flag, the animation clock and the frame
// delta. Vertical position and radius follow damped springs toward the open
// or closed configuration described by a [Layout]; children start moving
// after a per-index stagger so the menu unfurls instead of popping.
//
// The integrator is explicit Euler with an exponential velocity decay:
//
//	v += (target - x) * k * dt
//	v *= exp(-c * dt)
//	x += v * dt
//
// Position gains adapt to how far a blob still has to travel (see [Tuning]),
// which gives an ease-in/ease-out feel that also holds up when the flag flips
// mid-animation. Radius uses fixed gains.
//
// State is single-writer: only the frame callback mutates it. The shading
// stage receives an immutable copy through [State.Spheres].
package motion
