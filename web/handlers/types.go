package handlers

// ErrorResponse is the standard error response format for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AnalyzeRequest is the request format for the analyze and raw-load
// endpoints. Source is a local file path or an http(s) URL.
type AnalyzeRequest struct {
	Source string `json:"source"`
}

// StatsResponse is the response format for GET /api/stats.
type StatsResponse struct {
	Reports         int `json:"reports"`
	TriplesReports  int `json:"triples_reports"`
	OntologyReports int `json:"ontology_reports"`
}

// AnalysisEvent is broadcast over the WebSocket feed when an analysis
// completes, so open frontends can refresh their report list.
type AnalysisEvent struct {
	Type         string `json:"type"` // always "analysis_completed"
	ReportID     string `json:"report_id,omitempty"`
	Kind         string `json:"kind"`
	Source       string `json:"source"`
	SpeakerTurns int    `json:"speaker_turns"`
	Extractions  int    `json:"extractions"`
}
