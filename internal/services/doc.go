// Package services defines the [SourceService] and [OracleService] interfaces and implements them for the YouTube Data API and Gemini.
//
// # Service Interfaces
//
// The pipeline consumes both remote collaborators through interfaces, so engine
// logic and tests never depend on concrete transports.
//
// # YouTube Implementation
//
// [YouTubeService] talks directly to the YouTube Data API v3.
//
// Read operations (playlistItems.list) authenticate with an API key passed as a
// query parameter. Write operations (playlists.insert, playlistItems.insert)
// require an OAuth bearer token; the service builds its authorized client from
// [oauth2.StaticTokenSource] during Authenticate.
//
// # Gemini Implementation
//
// [GeminiService] calls generateContent with responseMimeType application/json
// and a response schema, then decodes the first candidate's text into typed
// results. This is the schema-validation boundary: malformed output becomes
// [shared.ErrClassificationSchema] and is never coerced.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : Authenticate() not called or incomplete
//   - [shared.ErrSourceUnavailable] : playlist page fetch failed
//   - [shared.ErrPlaylistCreate] / [shared.ErrPlaylistInsert] : write failures
//   - [shared.ErrAPIRequest] : oracle transport failure
//   - [shared.ErrClassificationSchema] : oracle output failed validation
package services
