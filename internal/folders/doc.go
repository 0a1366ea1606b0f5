// Package folders lists the anime directories of a local library.
package folders
