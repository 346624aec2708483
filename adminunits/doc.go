// Package adminunits reads Norwegian counties and communes from the
// Kartverket kommuneinfo API and exposes them as the fylker and kommuner
// codelists.
package adminunits
