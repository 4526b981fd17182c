// Package query loads the repository analysis request: which checkout to read,
// the date window, the file formats of interest and the authors to attribute.
package query
