package roster

import "strings"

// Header is the first line of the rendered roster.
const Header = "Today’s coaches:"

// Coach is one member of the coaching team.
type Coach struct {
	Name      string
	Specialty string
}

// String returns the coach as shown on the about page, e.g. "Coach Maya — Strength & Mobility".
func (c Coach) String() string {
	return c.Name + " — " + c.Specialty
}

// Team is the studio's coaching team in display order.
var Team = []Coach{
	{Name: "Coach Maya", Specialty: "Strength & Mobility"},
	{Name: "Coach Jordan", Specialty: "HIIT & Conditioning"},
	{Name: "Coach Sam", Specialty: "Personal Training"},
}

// Render formats coaches as a header line followed by one bulleted line each.
// PRE: none
// POST: every line, including the last, is newline-terminated; order is preserved
func Render(coaches []Coach) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for _, c := range coaches {
		b.WriteString("• ")
		b.WriteString(c.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Show renders the studio team.
func Show() string {
	return Render(Team)
}
