// Package types defines the data model shared by the Glossa analyzers,
// loaders, and API layer. The JSON field names match the schema produced
// by the extraction pipeline and consumed by the workbench frontend, so
// they must not be renamed.
package types

// Entity is one side of a semantic triple (subject or object).
// Either field may be empty, which means "no information"; empty values
// are excluded from aggregation rather than treated as a distinct value.
type Entity struct {
	Name       string `json:"name"`        // Display name of the entity
	EntityType string `json:"entity_type"` // Coarse type label (Person, Place, ...)
}

// Relation is the predicate of a semantic triple.
// Aggregation always keys on SemanticForm, the normalized label.
type Relation struct {
	SurfaceForm  string `json:"surface_form"`  // Predicate text as it appeared
	SemanticForm string `json:"semantic_form"` // Canonicalized predicate label
}

// Extraction is a single subject-relation-object triple with its evidence.
type Extraction struct {
	SubjectEntity   Entity   `json:"subject_entity"`
	Relation        Relation `json:"relation"`
	ObjectEntity    Entity   `json:"object_entity"`
	EvidenceText    string   `json:"evidence_text"`
	EvidenceSources []string `json:"evidence_sources,omitempty"`
}

// SpeakerTurn is one conversational turn with its extracted triples.
// ExtractionCount is derived: the triple analyzer sets it to
// len(Extractions) before including the turn in its result. It is the
// only field of the input the analyzer mutates.
type SpeakerTurn struct {
	SpeakerName         string       `json:"speaker_name"`
	Role                string       `json:"role"`
	UtteranceOrder      int          `json:"utterance_order"`
	Extractions         []Extraction `json:"extractions"`
	ExtractionCount     *int         `json:"extraction_count,omitempty"`
	Source              string       `json:"source,omitempty"`
	MetadataSourceFile  string       `json:"metadata_source_file,omitempty"`
	MetadataInterviewID string       `json:"metadata_interview_id,omitempty"`
}

// GlobalStats are corpus-wide totals for a flat-schema run.
type GlobalStats struct {
	TotalExtractions  int `json:"total_extractions"`
	TotalSpeakerTurns int `json:"total_speaker_turns"`
	UniqueEntityTypes int `json:"unique_entity_types"`
	UniqueEntityNames int `json:"unique_entity_names"`
	UniqueRelations   int `json:"unique_relations"`
}

// EntityTypeInfo is one entity type with its frequency counts.
// Count is the total number of occurrences across all extractions;
// UtteranceCount is the number of distinct speaker turns that mention
// the type at least once.
type EntityTypeInfo struct {
	Name           string `json:"name"`
	Count          int    `json:"count"`
	UtteranceCount int    `json:"utterance_count"`
}

// StructuralPattern is a subject-type -> relation -> object-type shape
// with its occurrence count.
type StructuralPattern struct {
	SubjectType string `json:"subject_type"`
	Relation    string `json:"relation"`
	ObjectType  string `json:"object_type"`
	Count       int    `json:"count"`
}

// RelationDiversity measures how many distinct subject types (domain)
// and object types (range) a relation was observed with.
type RelationDiversity struct {
	Relation       string `json:"relation"`
	DomainSize     int    `json:"domain_size"`
	RangeSize      int    `json:"range_size"`
	TotalDiversity int    `json:"total_diversity"`
}

// AnalysisResult is the complete report for a flat-schema run, returned
// to the frontend as a single JSON document. All ranked lists are sorted
// descending by count; equal-count ties have unspecified relative order.
type AnalysisResult struct {
	SpeakerTurns          []SpeakerTurn       `json:"speaker_turns"`
	GlobalStats           GlobalStats         `json:"global_stats"`
	EntityTypes           []EntityTypeInfo    `json:"entity_types"`
	EntityTypesHighFreq   []EntityTypeInfo    `json:"entity_types_high_freq"`
	EntityTypesMediumFreq []EntityTypeInfo    `json:"entity_types_medium_freq"`
	EntityTypesLowFreq    []EntityTypeInfo    `json:"entity_types_low_freq"`
	StructuralPatterns    []StructuralPattern `json:"structural_patterns"`
	RelationFrequencyMap  map[string]int      `json:"relation_frequency_map"`
	MultiTypedEntities    map[string][]string `json:"multi_typed_entities"`
	SubjectOnlyTypes      []string            `json:"subject_only_types"`
	ObjectOnlyTypes       []string            `json:"object_only_types"`
	TopDiverseRelations   []RelationDiversity `json:"top_diverse_relations"`
}
