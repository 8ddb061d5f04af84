// Package venue provides the persistent venue history and the merge logic
// for location queries.
//
// The history is one JSON document keyed by city slug (plus the reserved
// _global scope) holding name-sorted venue lists. Venues enter the history
// either directly from a listing scrape or derived from event records that
// reference venues not yet known. Within a scope, names are unique under
// case-insensitive comparison.
package venue
