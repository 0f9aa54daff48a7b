// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of the records that flow
// through the analysis pipeline: topics produced by a parser, relationships
// stored in the topology, and anomalies produced by the detectors.
//
// # Core Concepts
//
//   - Topic: a numbered section of a document with a title, content and
//     structural links (parent, children, three kinds of references).
//
//   - Relationship: a typed, directed edge between two topic ids. Edges are
//     immutable once added to a store; their status is a provenance record of
//     what was asserted, not a verdict.
//
//   - Anomaly: a typed finding with a fixed severity. Anomalies are values and
//     are only ever changed by attaching resolution strategies to a copy.
//
// Why a separate model package?
//
// Every stage (parsers, builder, store, detectors, sinks) speaks these types.
// Keeping them free of behavior beyond validation and the severity table lets
// each stage be replaced without touching the others.
package model
