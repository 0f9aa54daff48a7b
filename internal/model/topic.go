// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Topic record, the unit of input to the analysis core.
//
// Why is Topic a plain struct with exported fields?
//
// Topics are produced by external collaborators (a text parser, an HCL loader,
// a topic-map decoder) and are owned by the caller. The core only reads them
// and indexes their ids. The single exception is the builder, which appends a
// missing child id to the parent's Children list to restore the parent/child
// invariant before it builds the graph.
package model

import (
	"errors"
	"fmt"
)

// DefaultConfidence is the detection confidence assigned to topics found by a
// well-formed numbered header.
const DefaultConfidence = 0.95

// Position is the span of a topic's content inside the source document.
type Position struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Topic is a numbered section of a document.
type Topic struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// Parent is the authoritative source for hierarchical edges.
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`

	CrossReferences    []string `json:"cross_references,omitempty"`
	ForwardReferences  []string `json:"forward_references,omitempty"`
	BackwardReferences []string `json:"backward_references,omitempty"`

	Position   *Position `json:"position,omitempty"`
	Confidence float64   `json:"confidence"`
}

// ErrEmptyID is returned by Validate for a topic without an identifier.
var ErrEmptyID = errors.New("topic id is empty")

// Validate checks the record-level contract of a topic. Structural problems
// between topics (gaps, dangling references, cycles) are not errors and are
// left to the detectors.
func (t *Topic) Validate() error {
	if t == nil {
		return errors.New("topic is nil")
	}
	if t.ID == "" {
		return ErrEmptyID
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return fmt.Errorf("topic %q: confidence %v is outside [0,1]", t.ID, t.Confidence)
	}
	if t.Position != nil && t.Position.End < t.Position.Start {
		return fmt.Errorf("topic %q: position end %d precedes start %d", t.ID, t.Position.End, t.Position.Start)
	}
	return nil
}

// References returns the union of the three reference lists in the order
// cross, forward, backward. Duplicates are preserved.
func (t *Topic) References() []string {
	refs := make([]string, 0, len(t.CrossReferences)+len(t.ForwardReferences)+len(t.BackwardReferences))
	refs = append(refs, t.CrossReferences...)
	refs = append(refs, t.ForwardReferences...)
	refs = append(refs, t.BackwardReferences...)
	return refs
}

// HasChild reports whether id is listed in the topic's Children.
func (t *Topic) HasChild(id string) bool {
	for _, c := range t.Children {
		if c == id {
			return true
		}
	}
	return false
}
