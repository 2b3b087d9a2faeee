// Package constraints provides type constraints for generic helpers.
package constraints

// Byteseq is satisfied by raw field values given either as text or as bytes.
type Byteseq interface {
	~string | ~[]byte
}
