package types

// Mapping status values recognized by the ontology analyzer. Any other
// string is tolerated on input and simply not counted (lenient parsing,
// not an error).
const (
	MappingStatusMapped    = "mapped"
	MappingStatusUnmapped  = "unmapped"
	MappingStatusUncertain = "uncertain"
)

// OntologyMapping links an entity or relation to a reference ontology.
// Class is populated for entity mappings, Property for relation mappings.
type OntologyMapping struct {
	MappingStatus string `json:"mapping_status"`
	Class         string `json:"class,omitempty"`
	Property      string `json:"property,omitempty"`
}

// OntologyEntity is an entity with its ontology mapping.
type OntologyEntity struct {
	CanonicalName   string          `json:"canonical_name"`
	OntologyMapping OntologyMapping `json:"ontology_mapping"`
}

// OntologyRelation is a relation with its ontology mapping and negation flag.
type OntologyRelation struct {
	SurfaceForm     string          `json:"surface_form"`
	OntologyMapping OntologyMapping `json:"ontology_mapping"`
	IsNegated       bool            `json:"is_negated,omitempty"`
}

// ClaimType classifies the kind of claim an extraction makes.
type ClaimType struct {
	MappingStatus string `json:"mapping_status"`
	Class         string `json:"class"`
}

// EpistemicStance captures the nature of a knowledge claim: what kind of
// claim it is, how certain, and how it is grounded in time.
type EpistemicStance struct {
	ClaimType         []ClaimType     `json:"claim_type"`
	CertaintyLevel    OntologyMapping `json:"certainty_level"`
	TemporalGrounding OntologyMapping `json:"temporal_grounding"`
	AttributionType   string          `json:"attribution_type,omitempty"`
}

// Reasons holds the model's justification for each mapping decision.
type Reasons struct {
	SubObjClasses   string `json:"sub_obj_classes"`
	Relation        string `json:"relation"`
	EpistemicStance string `json:"epistemic_stance"`
}

// Provenance links an extraction back to its evidence.
type Provenance struct {
	EvidenceSentenceIDs []string `json:"evidence_sentence_ids"`
	EvidenceText        string   `json:"evidence_text"`
}

// OntologyExtraction is a rich semantic triple with ontology mappings,
// epistemic stance, and provenance.
type OntologyExtraction struct {
	ExtractionID    string           `json:"extraction_id"`
	Subject         OntologyEntity   `json:"subject"`
	Relation        OntologyRelation `json:"relation"`
	Object          OntologyEntity   `json:"object"`
	EpistemicStance EpistemicStance  `json:"epistemic_stance"`
	Reasons         Reasons          `json:"reasons"`
	Provenance      Provenance       `json:"provenance"`
}

// OntologySpeakerTurn is one conversational turn with its rich extractions.
// Unlike SpeakerTurn it carries no derived count field; the ontology
// analyzer never mutates its input.
type OntologySpeakerTurn struct {
	SpeakerName    string               `json:"speaker_name"`
	Role           string               `json:"role"`
	UtteranceOrder int                  `json:"utterance_order"`
	Extractions    []OntologyExtraction `json:"extractions"`
}

// OntologyGlobalStats are corpus-wide totals for an ontology run.
// The three status counters sum contributions from all three
// mapping-bearing fields, so a single extraction can add up to 3.
type OntologyGlobalStats struct {
	TotalExtractions         int `json:"total_extractions"`
	TotalSpeakerTurns        int `json:"total_speaker_turns"`
	UniqueOntologyClasses    int `json:"unique_ontology_classes"`
	UniqueOntologyProperties int `json:"unique_ontology_properties"`
	MappedCount              int `json:"mapped_count"`
	UnmappedCount            int `json:"unmapped_count"`
	UncertainCount           int `json:"uncertain_count"`
}

// ClaimTypeInfo is one claim-type label with its count.
type ClaimTypeInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CertaintyLevelInfo is one certainty-level label with its count.
type CertaintyLevelInfo struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// OntologyClassInfo is one ontology class with its count and the role(s)
// it was observed in: "subject", "object", or "both".
type OntologyClassInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Role  string `json:"role"`
}

// OntologyPropertyInfo is one ontology property with its count.
// MappingStatus is the status carried by the first extraction that
// introduced the property; later occurrences never overwrite it.
type OntologyPropertyInfo struct {
	Name          string `json:"name"`
	Count         int    `json:"count"`
	MappingStatus string `json:"mapping_status"`
}

// OntologyAnalysisResult is the complete report for an ontology run.
type OntologyAnalysisResult struct {
	SpeakerTurns               []OntologySpeakerTurn  `json:"speaker_turns"`
	GlobalStats                OntologyGlobalStats    `json:"global_stats"`
	OntologyClasses            []OntologyClassInfo    `json:"ontology_classes"`
	OntologyProperties         []OntologyPropertyInfo `json:"ontology_properties"`
	ClaimTypeDistribution      []ClaimTypeInfo        `json:"claim_type_distribution"`
	CertaintyLevelDistribution []CertaintyLevelInfo   `json:"certainty_level_distribution"`
}
