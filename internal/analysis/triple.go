// Package analysis implements the two Glossa aggregation engines: the
// triple analyzer for flat subject-relation-object extractions and the
// ontology analyzer for ontology-mapped extractions.
//
// Both analyzers are one-shot pure functions over an in-memory turn
// sequence. They perform no I/O, keep all accumulators call-scoped, and
// are safe to invoke concurrently as long as each call owns its input
// slice (the triple analyzer annotates extraction_count in place).
package analysis

import (
	"sort"

	"github.com/glossahq/glossa/pkg/types"
)

// maxDiverseRelations caps the top_diverse_relations list. The frontend
// renders a fixed-height panel, so the cutoff is a design constant.
const maxDiverseRelations = 20

// turnKey identifies a speaker turn for utterance-spread tracking.
type turnKey struct {
	speaker string
	order   int
}

// patternKey identifies a structural subject-type/relation/object-type shape.
type patternKey struct {
	subjectType string
	relation    string
	objectType  string
}

// AnalyzeSpeakerTurns computes the full triple analytics report for a
// sequence of flat-schema speaker turns. It never fails: empty strings
// are treated as "no information" and excluded from the statistic they
// would have fed, while the other sides of the same extraction still
// count. The only input mutation is setting each turn's ExtractionCount
// to len(Extractions); the annotated turns are included in the result.
func AnalyzeSpeakerTurns(turns []types.SpeakerTurn) *types.AnalysisResult {
	if turns == nil {
		turns = []types.SpeakerTurn{}
	}

	entityTypeCounts := make(map[string]int)
	entityUtterances := make(map[string]map[turnKey]struct{})
	patternCounts := make(map[patternKey]int)
	entityTypeSets := make(map[string]map[string]struct{})
	subjectTypes := make(map[string]struct{})
	objectTypes := make(map[string]struct{})
	relationDomain := make(map[string]map[string]struct{})
	relationRange := make(map[string]map[string]struct{})
	relationFrequency := make(map[string]int)
	entityNames := make(map[string]struct{})
	totalExtractions := 0

	// Single pass over every extraction of every turn.
	for i := range turns {
		turn := &turns[i]
		key := turnKey{speaker: turn.SpeakerName, order: turn.UtteranceOrder}

		count := len(turn.Extractions)
		turn.ExtractionCount = &count
		totalExtractions += count

		for _, ex := range turn.Extractions {
			subjName := ex.SubjectEntity.Name
			subjType := ex.SubjectEntity.EntityType
			relForm := ex.Relation.SemanticForm
			objName := ex.ObjectEntity.Name
			objType := ex.ObjectEntity.EntityType

			if relForm != "" {
				relationFrequency[relForm]++
			}

			if subjType != "" {
				entityTypeCounts[subjType]++
				addToSet(entityUtterances, subjType, key)
				subjectTypes[subjType] = struct{}{}
				if subjName != "" {
					addToSet(entityTypeSets, subjName, subjType)
					entityNames[subjName] = struct{}{}
				}
			}

			if objType != "" {
				entityTypeCounts[objType]++
				addToSet(entityUtterances, objType, key)
				objectTypes[objType] = struct{}{}
				if objName != "" {
					addToSet(entityTypeSets, objName, objType)
					entityNames[objName] = struct{}{}
				}
			}

			// Structural patterns and domain/range need all three sides.
			if subjType != "" && relForm != "" && objType != "" {
				patternCounts[patternKey{subjType, relForm, objType}]++
				addToSet(relationDomain, relForm, subjType)
				addToSet(relationRange, relForm, objType)
			}
		}
	}

	// Entity types ranked by total occurrence count.
	entityTypes := make([]types.EntityTypeInfo, 0, len(entityTypeCounts))
	for name, count := range entityTypeCounts {
		entityTypes = append(entityTypes, types.EntityTypeInfo{
			Name:           name,
			Count:          count,
			UtteranceCount: len(entityUtterances[name]),
		})
	}
	sort.SliceStable(entityTypes, func(i, j int) bool {
		return entityTypes[i].Count > entityTypes[j].Count
	})

	// Partition into frequency tiers by utterance spread. Every type
	// lands in exactly one tier and keeps its overall rank position.
	// Empty tiers serialize as [], never null.
	highFreq := []types.EntityTypeInfo{}
	mediumFreq := []types.EntityTypeInfo{}
	lowFreq := []types.EntityTypeInfo{}
	for _, et := range entityTypes {
		switch {
		case et.UtteranceCount > 3:
			highFreq = append(highFreq, et)
		case et.UtteranceCount >= 2:
			mediumFreq = append(mediumFreq, et)
		default:
			lowFreq = append(lowFreq, et)
		}
	}

	// Structural patterns ranked by occurrence count.
	patterns := make([]types.StructuralPattern, 0, len(patternCounts))
	for key, count := range patternCounts {
		patterns = append(patterns, types.StructuralPattern{
			SubjectType: key.subjectType,
			Relation:    key.relation,
			ObjectType:  key.objectType,
			Count:       count,
		})
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Count > patterns[j].Count
	})

	// Entities observed with more than one distinct type. Single-typed
	// entities are omitted entirely.
	multiTyped := make(map[string][]string)
	for name, typeSet := range entityTypeSets {
		if len(typeSet) <= 1 {
			continue
		}
		list := make([]string, 0, len(typeSet))
		for t := range typeSet {
			list = append(list, t)
		}
		sort.Strings(list)
		multiTyped[name] = list
	}

	// Types that only ever appear on one side of a triple.
	subjectOnly := setDifference(subjectTypes, objectTypes)
	objectOnly := setDifference(objectTypes, subjectTypes)

	// Relation diversity over the union of domain and range keys.
	allRelations := make(map[string]struct{}, len(relationDomain))
	for rel := range relationDomain {
		allRelations[rel] = struct{}{}
	}
	for rel := range relationRange {
		allRelations[rel] = struct{}{}
	}
	diverse := make([]types.RelationDiversity, 0, len(allRelations))
	for rel := range allRelations {
		domainSize := len(relationDomain[rel])
		rangeSize := len(relationRange[rel])
		diverse = append(diverse, types.RelationDiversity{
			Relation:       rel,
			DomainSize:     domainSize,
			RangeSize:      rangeSize,
			TotalDiversity: domainSize + rangeSize,
		})
	}
	sort.SliceStable(diverse, func(i, j int) bool {
		return diverse[i].TotalDiversity > diverse[j].TotalDiversity
	})
	if len(diverse) > maxDiverseRelations {
		diverse = diverse[:maxDiverseRelations]
	}

	return &types.AnalysisResult{
		SpeakerTurns: turns,
		GlobalStats: types.GlobalStats{
			TotalExtractions:  totalExtractions,
			TotalSpeakerTurns: len(turns),
			UniqueEntityTypes: len(entityTypes),
			UniqueEntityNames: len(entityNames),
			UniqueRelations:   len(relationFrequency),
		},
		EntityTypes:           entityTypes,
		EntityTypesHighFreq:   highFreq,
		EntityTypesMediumFreq: mediumFreq,
		EntityTypesLowFreq:    lowFreq,
		StructuralPatterns:    patterns,
		RelationFrequencyMap:  relationFrequency,
		MultiTypedEntities:    multiTyped,
		SubjectOnlyTypes:      subjectOnly,
		ObjectOnlyTypes:       objectOnly,
		TopDiverseRelations:   diverse,
	}
}

// addToSet inserts value into the set stored under key, allocating the
// set on first use.
func addToSet[K comparable, V comparable](m map[K]map[V]struct{}, key K, value V) {
	set, ok := m[key]
	if !ok {
		set = make(map[V]struct{})
		m[key] = set
	}
	set[value] = struct{}{}
}

// setDifference returns the members of a that are not in b. Order is
// unspecified (set semantics).
func setDifference(a, b map[string]struct{}) []string {
	diff := []string{}
	for v := range a {
		if _, ok := b[v]; !ok {
			diff = append(diff, v)
		}
	}
	return diff
}
