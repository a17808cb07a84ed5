// Package ihex decodes the Intel HEX file format: a line-oriented ASCII
// encoding of binary images used to program firmware and ROM devices.
//
// Decoding produces a RecordSet, the ordered sequence of validated records
// exactly as they appear in the input, terminated by an end-of-file record.
// A RecordSet is immutable once built. Its data records can be materialized
// into a flat byte buffer with CopyTo, extracted as contiguous segments with
// DataSegments, or rendered into a padded image with ToBinary.
//
// Encoding a record set back to Intel HEX text is out of scope for this
// package.
package ihex

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// RecordType is one of the six record type codes defined by the format.
type RecordType uint8

const (
	Data                   RecordType = 0x00
	EndOfFile              RecordType = 0x01
	ExtendedSegmentAddress RecordType = 0x02
	StartSegmentAddress    RecordType = 0x03
	ExtendedLinearAddress  RecordType = 0x04
	StartLinearAddress     RecordType = 0x05
)

// payloadSize gives the data byte count each non-data record type must
// carry. Data records are absent: their length field is free.
var payloadSize = map[RecordType]int{
	EndOfFile:              0,
	ExtendedSegmentAddress: 2,
	StartSegmentAddress:    4,
	ExtendedLinearAddress:  2,
	StartLinearAddress:     4,
}

func (t RecordType) String() string {
	switch t {
	case Data:
		return "data"
	case EndOfFile:
		return "end of file"
	case ExtendedSegmentAddress:
		return "extended segment address"
	case StartSegmentAddress:
		return "start segment address"
	case ExtendedLinearAddress:
		return "extended linear address"
	case StartLinearAddress:
		return "start linear address"
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// Record is one decoded line of an Intel HEX input. Data holds the record
// payload: image bytes for data records, the base value for extended
// address records, the entry point for start address records. The parser
// hands every record its own copy of the payload, so records never alias
// the input buffer or each other.
type Record struct {
	Length   uint8
	Type     RecordType
	Address  uint16
	Data     []byte
	Checksum uint8
}

// ChecksumValid reports whether the record satisfies the format's checksum
// invariant: length, address bytes, type, data bytes and the checksum byte
// sum to zero modulo 256. The parser enforces this for every record it
// produces; the method is exported for callers that build records
// themselves.
func (r *Record) ChecksumValid() bool {
	return recordChecksum(r.Length, r.Address, r.Type, r.Data) == r.Checksum
}

// RecordSet is the complete, validated record sequence of one input, in
// input order. The final record is always an end-of-file record. A set is
// never modified after parsing.
type RecordSet struct {
	records []Record
}

// Len returns the number of records, including the end-of-file record.
func (rs *RecordSet) Len() int {
	return len(rs.records)
}

// Records returns the record sequence in input order. The slice is the
// caller's to reorder or grow; the payload buffers are shared with the set
// and must be treated as read-only.
func (rs *RecordSet) Records() []Record {
	return slices.Clone(rs.records)
}

// Size returns the total payload size of the set in bytes: the sum of the
// length fields of data records. Address and start records contribute
// nothing, and gaps or overlaps between record addresses are not
// considered.
func (rs *RecordSet) Size() uint64 {
	var n uint64
	for i := range rs.records {
		if rs.records[i].Type == Data {
			n += uint64(rs.records[i].Length)
		}
	}
	return n
}

// StartAddress returns the program entry point carried by the last start
// segment or start linear address record, and whether the set has one.
// Start records are informational: their absence is not an error.
func (rs *RecordSet) StartAddress() (uint32, bool) {
	for i := len(rs.records) - 1; i >= 0; i-- {
		r := &rs.records[i]
		switch r.Type {
		case StartSegmentAddress, StartLinearAddress:
			return binary.BigEndian.Uint32(r.Data), true
		}
	}
	return 0, false
}

// AddressRange returns the half-open interval [lo, hi) of absolute
// addresses covered by the set's data records, after extended address
// resolution. A set without data bytes yields (0, 0). The interval ignores
// gaps: its width is an upper bound on the image size, not the payload
// size.
func (rs *RecordSet) AddressRange() (lo, hi uint64, err error) {
	first := true
	walkErr := rs.eachData(func(addr uint64, data []byte) error {
		if len(data) == 0 {
			return nil
		}
		if first {
			lo, hi = addr, addr
			first = false
		}
		if addr < lo {
			lo = addr
		}
		if end := addr + uint64(len(data)); end > hi {
			hi = end
		}
		return nil
	})
	if walkErr != nil {
		return 0, 0, walkErr
	}
	return lo, hi, nil
}
