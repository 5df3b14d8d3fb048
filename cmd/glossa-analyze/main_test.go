package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossahq/glossa/pkg/types"
)

const flatDoc = `[
  {
    "speaker_name": "A", "role": "participant", "utterance_order": 1,
    "extractions": [
      {
        "subject_entity": {"name": "Alice", "entity_type": "Person"},
        "relation": {"surface_form": "knows", "semantic_form": "knows"},
        "object_entity": {"name": "Bob", "entity_type": "Person"},
        "evidence_text": ""
      }
    ]
  }
]`

const ontologyDoc = `[
  {
    "speaker_name": "A", "role": "participant", "utterance_order": 1,
    "extractions": [
      {
        "extraction_id": "ex-1",
        "subject": {"canonical_name": "Alice", "ontology_mapping": {"mapping_status": "mapped", "class": "Person"}},
        "relation": {"surface_form": "knows", "ontology_mapping": {"mapping_status": "mapped", "property": "knows"}},
        "object": {"canonical_name": "Bob", "ontology_mapping": {"mapping_status": "mapped", "class": "Person"}},
        "epistemic_stance": {
          "claim_type": [],
          "certainty_level": {"mapping_status": "unmapped"},
          "temporal_grounding": {"mapping_status": "unmapped"}
        },
        "reasons": {"sub_obj_classes": "", "relation": "", "epistemic_stance": ""},
        "provenance": {"evidence_sentence_ids": [], "evidence_text": ""}
      }
    ]
  }
]`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_FlatAnalysis(t *testing.T) {
	path := writeDoc(t, flatDoc)

	result, err := run(context.Background(), path, false, false)
	require.NoError(t, err)

	report, ok := result.(*types.AnalysisResult)
	require.True(t, ok, "expected *types.AnalysisResult, got %T", result)
	assert.Equal(t, 1, report.GlobalStats.TotalExtractions)
	assert.Equal(t, 2, report.GlobalStats.UniqueEntityNames)
}

func TestRun_OntologyAnalysis(t *testing.T) {
	path := writeDoc(t, ontologyDoc)

	result, err := run(context.Background(), path, true, false)
	require.NoError(t, err)

	report, ok := result.(*types.OntologyAnalysisResult)
	require.True(t, ok, "expected *types.OntologyAnalysisResult, got %T", result)
	assert.Equal(t, 3, report.GlobalStats.MappedCount)
	assert.Equal(t, 1, report.GlobalStats.UniqueOntologyClasses)
}

func TestRun_Raw(t *testing.T) {
	path := writeDoc(t, flatDoc)

	result, err := run(context.Background(), path, false, true)
	require.NoError(t, err)

	turns, ok := result.([]types.SpeakerTurn)
	require.True(t, ok, "expected []types.SpeakerTurn, got %T", result)
	require.Len(t, turns, 1)
	assert.Nil(t, turns[0].ExtractionCount)
}

func TestRun_MissingFile(t *testing.T) {
	_, err := run(context.Background(), filepath.Join(t.TempDir(), "absent.json"), false, false)
	require.Error(t, err)
}

func TestWrite_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, write(map[string]int{"a": 1}, path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(data))
}
