// Package topicparse turns document text into topic records with a set of
// line-oriented rules: numbered header lines start a topic, the lines that
// follow are its content, and phrases such as "see section 4.2" become
// references.
//
// The parser never calls out to other services. Topics whose detection is
// doubtful (non-numeric ids, very short content) receive a lower confidence
// from the configured Scorer instead.
package topicparse
