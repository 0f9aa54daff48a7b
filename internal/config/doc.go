// Package config defines the format-agnostic input model of an analysis run,
// along with the Loader interface for reading it from various sources.
//
// The `config.Model` is the single source of truth for the engine. Concrete
// loaders are provided in separate packages: internal/hcl for HCL topic
// documents, internal/topicmap for saved topic maps and internal/topicparse
// for plain documents.
package config
