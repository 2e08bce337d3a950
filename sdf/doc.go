// Package sdf evaluates the glass blob field on the CPU.
//
// A scene is up to MaxSpheres spheres merged with a polynomial smooth minimum.
// Shade maps one output pixel to a world-space ray on the plane z = 2, sphere
// traces it toward -Z, and shades a hit as clear glass: fresnel, refraction
// with per-channel aberration, a thin-film edge band and two specular lobes.
// Misses are fully transparent.
//
// Shade is pure. Renderer runs it over an image in parallel bands of rows.
package sdf
