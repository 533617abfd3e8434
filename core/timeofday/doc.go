// Package timeofday normalizes compact digit-only clock tokens such as
// "930" or "1045" into validated hour/minute values. Historical on-time
// record feeds drop the leading zero for hours below ten, which makes the
// tokens unparseable by fixed-width time layouts.
package timeofday
