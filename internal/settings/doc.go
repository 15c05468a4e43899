// Package settings persists the operator-level GlobalSettings document.
//
// The file is JSON. Load never fails: a file that is neither canonical nor
// in the legacy layout is moved aside to "<path>.error" and defaults are
// returned. Save keeps exactly one previous copy at "<path>.bak".
//
// Store is not safe for concurrent Save calls; the last write wins.
package settings
