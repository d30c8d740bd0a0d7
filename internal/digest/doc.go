// Package digest computes stable content hashes for run results.
//
// Values are serialized as RFC 8785 canonical JSON (sorted keys by UTF-16
// code unit, NFC-normalized strings, no HTML escaping) and hashed with
// domain-separated SHA-256:
//
//	SHA256(domain || 0x00 || canonical)
//
// Floats and nulls are rejected, so only integer counters and strings ever
// contribute to a digest. Derived ratios are deliberately outside it.
package digest
