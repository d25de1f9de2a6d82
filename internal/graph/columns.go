package graph

import (
	"sort"

	"github.com/matijakljajic/nosqluns/internal/tabular"
)

// Node key columns, in the neo4j-admin bulk import header notation the
// whole dataset is written in.
const (
	colCountryID  = "country_code:ID(Country-ID)"
	colSportID    = "sport_code:ID(Sport-ID)"
	colVenueID    = "venue_code:ID(Venue-ID)"
	colSessionID  = "session_id:ID(Session-ID)"
	colAthleteID  = "athlete_code:ID(Athlete-ID)"
	colCoachID    = "coach_code:ID(Coach-ID)"
	colOfficialID = "official_code:ID(Official-ID)"
	colTeamID     = "team_code:ID(Team-ID)"
	colEventID    = "event_code:ID(Event-ID)"

	colType = ":TYPE"
)

// Relationship type tags carried in the :TYPE column of every edge table.
const (
	relSessionFor = "SESSION_FOR"
	relHeldAt     = "HELD_AT"
	relUseVenue   = "USE_VENUE"
	relRepresents = "REPRESENTS"
	relMemberOf   = "MEMBER_OF"
	relCoaches    = "COACHES"
	relPartOf     = "PART_OF"
	relHostedAt   = "HOSTED_AT"
	relCompetedIn = "COMPETED_IN"
	relWonMedal   = "WON_MEDAL"
)

func startID(label string) string { return ":START_ID(" + label + "-ID)" }
func endID(label string) string   { return ":END_ID(" + label + "-ID)" }

func edgeRow(startCol, start, endCol, end, relType string) tabular.Row {
	return tabular.Row{startCol: start, endCol: end, colType: relType}
}

// sortRows orders rows by the given columns, in place. Stable so that
// rows sharing a full composite key keep their source order.
func sortRows(rows []tabular.Row, columns ...string) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, column := range columns {
			if rows[i][column] != rows[j][column] {
				return rows[i][column] < rows[j][column]
			}
		}
		return false
	})
}

// sortedKeys returns the keys of a string set in ascending order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
