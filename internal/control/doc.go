// Package control maps host input to live configuration changes.
//
// Every host (window or terminal) translates its native key events into a
// key string and hands it to [ActionForKey]; a [Panel] applies the
// resulting [Action] to the running loop:
//
//	key     action
//	+ / -   particle count
//	s / S   particle size
//	c       next color scheme
//	[ / ]   speed
//	m / M   pointer influence
//	o       heart outline
//	f       fullscreen (window hosts)
//	space   pause
//	h       controls panel
//	q       quit
//
// Count, size and scheme changes regenerate the trails; the rest apply on the
// next frame.
package control
