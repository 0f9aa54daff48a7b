package model

// RelationType tags the origin of an edge.
type RelationType string

const (
	Hierarchical      RelationType = "hierarchical"
	CrossReference    RelationType = "cross_reference"
	ForwardReference  RelationType = "forward_reference"
	BackwardReference RelationType = "backward_reference"
)

// RelationTypes lists every relation type in a stable order.
var RelationTypes = []RelationType{Hierarchical, CrossReference, ForwardReference, BackwardReference}

// RelationStatus records what was asserted about an edge when it was added.
type RelationStatus string

const (
	StatusValid     RelationStatus = "valid"
	StatusBroken    RelationStatus = "broken"
	StatusAmbiguous RelationStatus = "ambiguous"
)

// Relationship is a directed, typed edge between two topic ids.
type Relationship struct {
	Source   string         `json:"source"`
	Target   string         `json:"target"`
	Type     RelationType   `json:"type"`
	Status   RelationStatus `json:"status"`
	Context  string         `json:"context,omitempty"`
	Severity Severity       `json:"severity,omitempty"`
}
