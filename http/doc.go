// Package http exposes the edgekit resources over a chi router.
//
// The surface is three example resource APIs plus an AI passthrough:
//
//   - /todos: CRUD over the relational todo table
//   - /upload, /files: object upload, listing with cursor pagination,
//     range and conditional downloads, deletes
//   - /api/upload, /api/media, /api/delete, /media: media records
//     spanning the object store and a relational index row
//   - /api/chat, /api/generate-image: inference passthrough
//
// Every response, errors included, is JSON except file and media
// downloads and generated images. CORS headers are applied by
// middleware on the whole router, so they are present on error
// responses and preflights too.
package http
