// Package viz hosts a simulation in the terminal.
//
// The loop paints onto a [render.Raster] sized to the terminal in braille
// sub-pixels (two per column, four per row). Every frame the raster is
// thresholded into a [Canvas] and printed with the brightest color of each
// cell, next to the controls panel and a leader speed graph.
//
// Mouse motion inside the canvas drives the pointer; leaving the canvas or
// the terminal losing focus deactivates it. Key bindings are those of the
// control package.
package viz
