package game

// PlaceholderMission is shown for rounds beyond the defined table.
const PlaceholderMission = "Mission à définir"

// MissionTable maps a round number to its mission label. Missions are
// display-only; they never change the point-delta rule.
type MissionTable map[int]string

// DefaultMissions returns the standard five-round table.
func DefaultMissions() MissionTable {
	return MissionTable{
		1: "Deux brelans",
		2: "Une suite + Un brelan",
		3: "Deux suites",
		4: "Trois brelans",
		5: "Deux brelans et une suite (on jète pas à la fin)",
	}
}

// Label returns the mission for a round, or the placeholder when the
// table has no entry for it.
func (m MissionTable) Label(round int) string {
	if label, ok := m[round]; ok {
		return label
	}
	return PlaceholderMission
}
