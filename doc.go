// Package edgekit contains the domain model and services for a set of
// example resource APIs backed by pluggable storage capabilities: a todo
// list over a relational table, a file store over blob storage with a
// relational metadata index, and a media gallery that spans both.
//
// The package defines the capability interfaces (TodoRepo, MediaRepo,
// ObjectRepo, BlobStore) and the services that sequence calls against
// them. Concrete backends live in the database, filesystem and s3
// subpackages; the HTTP surface lives in the http subpackage.
package edgekit
