// Package idgen wraps the UUID generator used to tag published events so
// that tests can pin identifiers. Treat returned values as opaque strings.
package idgen
