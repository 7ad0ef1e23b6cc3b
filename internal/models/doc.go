// Package models defines domain entities for the moodsplit playlist splitting service.
//
// All types are Data Transfer Objects: lightweight structs representing external service data.
//
//   - [SongInfo] : One playlist item with the metadata the classifier sees
//   - [SongPage] : A single page of a paginated playlist read
//   - [Classification] : One song's assignment to an approved category
//
// No model persists between runs; a run owns its data for the duration of one invocation.
package models
