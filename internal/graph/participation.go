package graph

import (
	"github.com/matijakljajic/nosqluns/internal/domain"
	"github.com/matijakljajic/nosqluns/internal/tabular"
)

var resultDetailColumns = []string{
	"stage_code",
	"event_stage",
	"stage",
	"date",
	"result",
	"result_type",
	"result_status",
	"result_diff",
	"bib",
	"rank",
}

// buildParticipation flattens the per-participant result payloads into
// COMPETED_IN edge tables, one row per participant per event per stage.
// Payloads missing their participant code are filtered out.
func (p *Pipeline) buildParticipation(athleteResults, teamResults []domain.Result) error {
	athleteRows := participationRows(athleteResults, "Athlete")
	sortRows(athleteRows, startID("Athlete"), endID("Event"), "stage_code")
	if err := p.writeTable("rels_athlete_event_results.csv", participationColumns("Athlete"), athleteRows); err != nil {
		return err
	}

	teamRows := participationRows(teamResults, "Team")
	sortRows(teamRows, startID("Team"), endID("Event"), "stage_code")
	return p.writeTable("rels_team_event_results.csv", participationColumns("Team"), teamRows)
}

func participationColumns(label string) []string {
	columns := []string{startID(label), endID("Event")}
	columns = append(columns, resultDetailColumns...)
	return append(columns, colType)
}

func participationRows(results []domain.Result, label string) []tabular.Row {
	rows := make([]tabular.Row, 0, len(results))
	for _, result := range results {
		if result.ParticipantCode == "" {
			continue
		}
		rows = append(rows, tabular.Row{
			startID(label):  result.ParticipantCode,
			endID("Event"):  result.EventCode,
			"stage_code":    result.StageCode,
			"event_stage":   result.EventStage,
			"stage":         result.Stage,
			"date":          result.Date,
			"result":        result.Result,
			"result_type":   result.ResultType,
			"result_status": result.ResultStatus,
			"result_diff":   result.ResultDiff,
			"bib":           result.Bib,
			"rank":          result.Rank,
			colType:         relCompetedIn,
		})
	}
	return rows
}
