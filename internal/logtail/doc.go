// Package logtail reads the tail of the namelist diagnostics log.
//
// # Reading Log Files
//
// Read extracts the last maxLines from a file with a ring buffer, so memory
// stays O(maxLines) regardless of file size:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines, return the first 'count' entries
//	4. Otherwise return the buffer starting at the current index
//
// A non-positive maxLines returns the whole file. Missing files return
// nil, nil; other errors are wrapped with "open log" or "read log".
//
// # Level Filtering
//
// The log is written by zerolog in either JSON or console format. LevelOf
// recognises both:
//
//	{"level":"warn","time":"...","message":"set page size: invalid size"}
//	2025-03-01T10:00:00Z WRN set page size: invalid size size=7
//
// Filter drops lines below a minimum level and keeps anything it cannot
// classify.
package logtail
