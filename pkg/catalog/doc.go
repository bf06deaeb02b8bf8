// Package catalog walks a template root, parses and validates every
// document beneath it, and exposes the resulting records alongside
// per-document issues. A load never aborts on a malformed document; only
// an unreadable root is fatal.
package catalog
