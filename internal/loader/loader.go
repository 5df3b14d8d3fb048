// Package loader reads speaker-turn documents from local files or remote
// URLs and decodes them into the typed records the analyzers consume.
//
// The loader surfaces exactly two failure kinds: ReadError for anything
// that prevented obtaining the bytes (missing file, unreachable host,
// open circuit) and ParseError for malformed JSON. Both are terminal for
// the request; the loader never retries.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/glossahq/glossa/pkg/types"
)

// ReadError reports a failure to obtain a document's bytes.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports a failure to decode a document's JSON body.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader resolves document sources. Local paths are read directly; http
// and https URLs go through a circuit-breaker-protected fetcher so a
// flapping corpus host fails fast instead of hanging every request.
type Loader struct {
	fetcher *RemoteFetcher
}

// New creates a Loader with the default remote fetcher.
func New() *Loader {
	return &Loader{fetcher: NewRemoteFetcher()}
}

// LoadSpeakerTurns reads and decodes a flat-schema document.
func (l *Loader) LoadSpeakerTurns(ctx context.Context, source string) ([]types.SpeakerTurn, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	var turns []types.SpeakerTurn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return turns, nil
}

// LoadOntologyTurns reads and decodes an ontology-schema document.
func (l *Loader) LoadOntologyTurns(ctx context.Context, source string) ([]types.OntologySpeakerTurn, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	var turns []types.OntologySpeakerTurn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return turns, nil
}

// read obtains the raw bytes for a source, dispatching on its scheme.
func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if IsRemote(source) {
		data, err := l.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, &ReadError{Source: source, Err: err}
		}
		return data, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, &ReadError{Source: source, Err: err}
	}
	return data, nil
}

// IsRemote reports whether source is an http(s) URL rather than a path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
