// Package entity implements the entity-component store the ingestion
// systems populate and the topology traversal system reads from: vector
// entities (geometry, topology) and feature entities (semantics,
// attributes), keyed by the S-57 NAME and FOID bitstring encodings.
//
// Reference: original_source/s57-interp/src/ecs.rs (World),
// original_source/s57-parse/src/bitstring.rs (NameKey, FoidKey), spec §3.2.
package entity

import (
	"encoding/binary"
	"fmt"
)

// Name is the decoded NAME field (B(40)): identifies a vector record.
type Name struct {
	RCNM uint8
	RCID uint32
}

// DecodeName decodes a 5-byte NAME bitstring: byte 0 is RCNM, bytes 1-4 are
// RCID as a little-endian uint32.
func DecodeName(data []byte) (Name, error) {
	if len(data) != 5 {
		return Name{}, fmt.Errorf("NAME (B40) must be exactly 5 bytes, got %d", len(data))
	}
	return Name{
		RCNM: data[0],
		RCID: binary.LittleEndian.Uint32(data[1:5]),
	}, nil
}

// Encode renders Name back to its 5-byte wire form.
func (n Name) Encode() [5]byte {
	var out [5]byte
	out[0] = n.RCNM
	binary.LittleEndian.PutUint32(out[1:5], n.RCID)
	return out
}

// FoidKey is the decoded LNAM field (B(64)): identifies a feature record.
type FoidKey struct {
	AGEN uint16
	FIDN uint32
	FIDS uint16
}

// DecodeFoidKey decodes an 8-byte LNAM bitstring: AGEN (u16 LE), FIDN (u32
// LE), FIDS (u16 LE).
func DecodeFoidKey(data []byte) (FoidKey, error) {
	if len(data) != 8 {
		return FoidKey{}, fmt.Errorf("LNAM (B64) must be exactly 8 bytes, got %d", len(data))
	}
	return FoidKey{
		AGEN: binary.LittleEndian.Uint16(data[0:2]),
		FIDN: binary.LittleEndian.Uint32(data[2:6]),
		FIDS: binary.LittleEndian.Uint16(data[6:8]),
	}, nil
}

// Encode renders FoidKey back to its 8-byte wire form.
func (k FoidKey) Encode() [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint16(out[0:2], k.AGEN)
	binary.LittleEndian.PutUint32(out[2:6], k.FIDN)
	binary.LittleEndian.PutUint16(out[6:8], k.FIDS)
	return out
}
