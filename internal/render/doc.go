// Package render paints the swarm onto a display surface.
//
// A [Surface] is anything that can composite a translucent full-frame fill
// and translucent discs. The [Renderer] never clears a surface: each frame
// starts with a low-opacity background fill over the previous one, which
// leaves fading afterimages behind moving particles.
//
// [Raster] is the software surface used by headless runs, GIF recording and
// the terminal host. Window hosts provide their own surfaces.
package render
