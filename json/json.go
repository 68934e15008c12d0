// Package json encodes syntax trees and runs as versioned JSON documents
// and loads style table configuration.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/mfm"
)

// version is the current envelope format.
const version = 1

// envelope is the v1 wire format for an encoded tree or run list.
type envelope struct {
	Version int       `json:"version"`
	Nodes   []nodeDTO `json:"nodes,omitempty"`
	Runs    []runDTO  `json:"runs,omitempty"`
}

// MarshalNodes serializes a syntax tree to JSON in v1 envelope format.
func MarshalNodes(nodes []mfm.Node) ([]byte, error) {
	dtos, err := marshalNodes(nodes)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope{Version: version, Nodes: dtos}, "", "  ")
}

// UnmarshalNodes deserializes a syntax tree from JSON in v1 envelope format.
func UnmarshalNodes(data []byte) ([]mfm.Node, error) {
	env, err := unmarshalEnvelope(data)
	if err != nil {
		return nil, err
	}
	return unmarshalNodes(env.Nodes)
}

// MarshalRuns serializes presentation runs to JSON in v1 envelope format.
func MarshalRuns(runs []mfm.Run) ([]byte, error) {
	dtos, err := marshalRuns(runs)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope{Version: version, Runs: dtos}, "", "  ")
}

// UnmarshalRuns deserializes presentation runs from JSON in v1 envelope
// format.
func UnmarshalRuns(data []byte) ([]mfm.Run, error) {
	env, err := unmarshalEnvelope(data)
	if err != nil {
		return nil, err
	}
	return unmarshalRuns(env.Runs)
}

func unmarshalEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		return envelope{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	return env, nil
}
