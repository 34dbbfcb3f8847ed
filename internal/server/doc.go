// Package server exposes the generation pipeline over HTTP.
//
// Endpoints:
//
//	POST /generate        JSON configuration in, {"id","downloadUrl"} out
//	GET  /download/{id}   the archive for id, released after delivery
//	GET  /healthz         liveness probe
//
// Every response carries CORS headers for the configured browser origin and
// preflight requests are answered directly.
package server
