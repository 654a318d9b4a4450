// Package report renders plans, reasoning chains, and session exports as
// human-readable text. All renderings are plain strings suitable for
// terminals and log output; Markdown produces a shareable session report.
package report
