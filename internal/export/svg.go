package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/heartswarm/internal/sim"
)

// TrailsToSVG renders the current particles of st as filled circles on a
// black background, with the curve points as faint dots when the outline is
// enabled.
func TrailsToSVG(st *sim.State) string {
	if st == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, st.Width, st.Height, st.Width, st.Height))

	if st.Config.ShowHeartOutline {
		sb.WriteString(`<g fill="rgba(255,255,255,0.16)">` + "\n")
		for _, p := range st.Path.Points() {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5"/>`+"\n", p.X, p.Y))
		}
		sb.WriteString("</g>\n")
	}

	for i := range st.Trails {
		t := &st.Trails[i]
		if t.Len() == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<g fill="%s">`+"\n", t.Particles[0].Color.CSS()))
		for _, p := range t.Particles {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f"/>`+"\n", p.Pos.X, p.Pos.Y, p.Radius))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
