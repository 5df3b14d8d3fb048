package analysis

import (
	"sort"

	"github.com/glossahq/glossa/pkg/types"
)

// classTally accumulates per-class counts and the roles (subject/object)
// the class was observed in.
type classTally struct {
	count int
	roles map[string]struct{}
}

// propertyTally accumulates per-property counts. status is frozen to the
// mapping status of the first extraction that introduced the property;
// later occurrences with a different status do not overwrite it. The
// frontend depends on this first-write-wins behavior, so keep it even
// though it looks accidental.
type propertyTally struct {
	count  int
	status string
}

// AnalyzeOntologyTurns computes the full ontology analytics report for a
// sequence of ontology-mapped speaker turns. Like AnalyzeSpeakerTurns it
// is total: unrecognized mapping statuses and absent class/property
// values are silently skipped, never errors. The input is not mutated.
func AnalyzeOntologyTurns(turns []types.OntologySpeakerTurn) *types.OntologyAnalysisResult {
	if turns == nil {
		turns = []types.OntologySpeakerTurn{}
	}

	totalExtractions := 0
	mappedCount := 0
	unmappedCount := 0
	uncertainCount := 0

	classes := make(map[string]*classTally)
	properties := make(map[string]*propertyTally)
	claimTypes := make(map[string]int)
	certaintyLevels := make(map[string]int)

	countStatus := func(status string) {
		switch status {
		case types.MappingStatusMapped:
			mappedCount++
		case types.MappingStatusUnmapped:
			unmappedCount++
		case types.MappingStatusUncertain:
			uncertainCount++
		}
		// Anything else is tolerated and counted toward none of the three.
	}

	recordClass := func(mapping types.OntologyMapping, role string) {
		if mapping.Class == "" {
			return
		}
		tally, ok := classes[mapping.Class]
		if !ok {
			tally = &classTally{roles: make(map[string]struct{})}
			classes[mapping.Class] = tally
		}
		tally.count++
		tally.roles[role] = struct{}{}
	}

	for _, turn := range turns {
		totalExtractions += len(turn.Extractions)

		for _, ex := range turn.Extractions {
			// Each extraction carries three mapping-bearing fields, so it
			// can contribute up to 3 to the combined status totals.
			countStatus(ex.Subject.OntologyMapping.MappingStatus)
			countStatus(ex.Object.OntologyMapping.MappingStatus)
			countStatus(ex.Relation.OntologyMapping.MappingStatus)

			recordClass(ex.Subject.OntologyMapping, "subject")
			recordClass(ex.Object.OntologyMapping, "object")

			if prop := ex.Relation.OntologyMapping.Property; prop != "" {
				tally, ok := properties[prop]
				if !ok {
					tally = &propertyTally{status: ex.Relation.OntologyMapping.MappingStatus}
					properties[prop] = tally
				}
				tally.count++
			}

			// One extraction may carry several claim-type entries and
			// contributes to each of their counters.
			for _, ct := range ex.EpistemicStance.ClaimType {
				claimTypes[ct.Class]++
			}

			if level := ex.EpistemicStance.CertaintyLevel.Class; level != "" {
				certaintyLevels[level]++
			}
		}
	}

	// Classes ranked by count, with the role collapsed to subject, object,
	// or both. The role set is never empty: an entry only exists because
	// recordClass inserted a role alongside the count.
	classList := make([]types.OntologyClassInfo, 0, len(classes))
	for name, tally := range classes {
		role := ""
		if len(tally.roles) > 1 {
			role = "both"
		} else {
			for r := range tally.roles {
				role = r
			}
		}
		classList = append(classList, types.OntologyClassInfo{
			Name:  name,
			Count: tally.count,
			Role:  role,
		})
	}
	sort.SliceStable(classList, func(i, j int) bool {
		return classList[i].Count > classList[j].Count
	})

	// Properties ranked by count, each keeping its frozen status.
	propertyList := make([]types.OntologyPropertyInfo, 0, len(properties))
	for name, tally := range properties {
		propertyList = append(propertyList, types.OntologyPropertyInfo{
			Name:          name,
			Count:         tally.count,
			MappingStatus: tally.status,
		})
	}
	sort.SliceStable(propertyList, func(i, j int) bool {
		return propertyList[i].Count > propertyList[j].Count
	})

	claimDistribution := countDistribution(claimTypes, func(name string, count int) types.ClaimTypeInfo {
		return types.ClaimTypeInfo{Name: name, Count: count}
	})
	sort.SliceStable(claimDistribution, func(i, j int) bool {
		return claimDistribution[i].Count > claimDistribution[j].Count
	})

	certaintyDistribution := countDistribution(certaintyLevels, func(level string, count int) types.CertaintyLevelInfo {
		return types.CertaintyLevelInfo{Level: level, Count: count}
	})
	sort.SliceStable(certaintyDistribution, func(i, j int) bool {
		return certaintyDistribution[i].Count > certaintyDistribution[j].Count
	})

	return &types.OntologyAnalysisResult{
		SpeakerTurns: turns,
		GlobalStats: types.OntologyGlobalStats{
			TotalExtractions:         totalExtractions,
			TotalSpeakerTurns:        len(turns),
			UniqueOntologyClasses:    len(classList),
			UniqueOntologyProperties: len(propertyList),
			MappedCount:              mappedCount,
			UnmappedCount:            unmappedCount,
			UncertainCount:           uncertainCount,
		},
		OntologyClasses:            classList,
		OntologyProperties:         propertyList,
		ClaimTypeDistribution:      claimDistribution,
		CertaintyLevelDistribution: certaintyDistribution,
	}
}

// countDistribution converts a label->count map into a slice of records.
func countDistribution[T any](counts map[string]int, build func(string, int) T) []T {
	out := make([]T, 0, len(counts))
	for label, count := range counts {
		out = append(out, build(label, count))
	}
	return out
}
