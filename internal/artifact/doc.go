// Package artifact publishes assembled project trees as downloadable zip
// archives and serves them back by id.
//
// Every publication gets its own workspace and archive, named by a random
// UUID. A tree is written into <root>/work/<id>/, packed to
// <root>/archives/<id>.zip.partial and renamed to <id>.zip once complete.
// Only then is the id recorded in the index, so Open never observes a
// partially written archive. Archives live until they are released after a
// download, swept after their TTL, or removed by Close.
package artifact
