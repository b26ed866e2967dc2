// Package hash provides the CRC32-Castagnoli checksum used to guard encoded
// neighbor graphs.
//
//	sum := hash.CRC32C(data)
//
// or, for streamed payloads:
//
//	h := hash.NewCRC32C()
//	_, _ = h.Write(chunk)
//	sum := h.Sum32()
package hash
