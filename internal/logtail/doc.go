// Package logtail reads userdesk's own log file for the activity panel.
//
// Read returns the last N non-blank lines of a file in one pass, using a
// ring buffer of N entries, so memory stays bounded however large the log
// grows. A missing file is not an error: the panel simply shows nothing
// until the first entry is written.
//
// Parse reduces one line to an Entry (clock time, level, logger name,
// message, sorted structured fields). Both logger encodings are
// understood:
//
//	{"level":"warn","ts":1704067200.5,"logger":"reqres","msg":"request failed","status":404}
//	2024-01-01T00:00:00.500Z	WARN	reqres	reqres/client.go:201	request failed	{"status": 404}
//
// Either line renders as:
//
//	00:00:00 WARN reqres request failed status=404
//
// (the clock for json lines is shown in local time). Lines that match
// neither shape are passed through as the message.
package logtail
