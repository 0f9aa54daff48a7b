/*
Package topicid provides a structured representation for topic identifiers,
based on the dotted path format used by numbered documents.

The format is a dot-separated sequence of segments, e.g. `18.3`, `5.1.a`,
`IV.2` or `A.B`. A segment is numeric when it consists only of ASCII digits.

The builder, the numbering-gap detector and the reference extractor all go
through Parse, so they agree on what "the parent of 18.3" or "the trailing
number of 5.12" means.
*/
package topicid
