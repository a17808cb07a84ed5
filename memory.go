package ihex

import (
	"encoding/binary"
	"sort"
)

// WordWidth is the word grouping applied when materializing data records.
type WordWidth uint

const (
	Width8  WordWidth = 1
	Width16 WordWidth = 2
	Width32 WordWidth = 4
	Width64 WordWidth = 8
)

// ByteOrder selects how bytes are laid out within each word group.
// BigEndian keeps the record's stream order; LittleEndian reverses each
// group of WordWidth bytes.
type ByteOrder uint

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// eachData walks the record sequence in input order, tracking the active
// extended base address, and calls fn for every data record with its
// resolved absolute address. The base is whichever extended segment
// (value<<4) or extended linear (value<<16) record was seen last, zero
// before any. Start address records are skipped and the walk ends at the
// end-of-file record.
func (rs *RecordSet) eachData(fn func(addr uint64, data []byte) error) error {
	var base uint64
	for i := range rs.records {
		r := &rs.records[i]
		switch r.Type {
		case Data:
			if err := fn(base+uint64(r.Address), r.Data); err != nil {
				return err
			}
		case EndOfFile:
			return nil
		case ExtendedSegmentAddress:
			if len(r.Data) != 2 {
				return newError(InvalidArgument, 0, "extended segment address record needs a 2 byte payload, has %d", len(r.Data))
			}
			base = uint64(binary.BigEndian.Uint16(r.Data)) << 4
		case ExtendedLinearAddress:
			if len(r.Data) != 2 {
				return newError(InvalidArgument, 0, "extended linear address record needs a 2 byte payload, has %d", len(r.Data))
			}
			base = uint64(binary.BigEndian.Uint16(r.Data)) << 16
		case StartSegmentAddress, StartLinearAddress:
			// informational only, never materialized
		default:
			return newError(UnknownRecordType, 0, "type code 0x%02X is not defined", uint8(r.Type))
		}
	}
	return nil
}

// CopyTo materializes the set's data records into dst. Each record is
// written at its resolved absolute address; when width is wider than one
// byte and order is LittleEndian, every width-sized group of payload bytes
// is reversed before writing (a final group shorter than width is reversed
// within its own size). Records later in the set overwrite earlier ones
// where they touch the same addresses.
//
// A record reaching past the end of dst fails with AddressOutOfRange and
// aborts the walk. Records already written stay written: dst is not rolled
// back, so callers wanting a clean image on failure should ZeroFill and
// retry. CopyTo never clears dst itself.
func (rs *RecordSet) CopyTo(dst []byte, width WordWidth, order ByteOrder) error {
	switch width {
	case Width8, Width16, Width32, Width64:
	default:
		return newError(InvalidArgument, 0, "word width must be 1, 2, 4 or 8 bytes, not %d", uint(width))
	}
	if order != BigEndian && order != LittleEndian {
		return newError(InvalidArgument, 0, "byte order %d is not defined", uint(order))
	}
	return rs.eachData(func(addr uint64, data []byte) error {
		if addr+uint64(len(data)) > uint64(len(dst)) {
			return newError(AddressOutOfRange, 0, "%d byte record at 0x%08X overruns the %d byte destination", len(data), addr, len(dst))
		}
		off := int(addr)
		if order == BigEndian || width == Width8 {
			copy(dst[off:], data)
			return nil
		}
		for i := 0; i < len(data); i += int(width) {
			end := i + int(width)
			if end > len(data) {
				end = len(data)
			}
			for j := i; j < end; j++ {
				dst[off+i+(end-1-j)] = data[j]
			}
		}
		return nil
	})
}

// ZeroFill zeroes every byte of dst. It pairs with CopyTo for building a
// clean image in a reused buffer.
func ZeroFill(dst []byte) {
	clear(dst)
}

// DataSegment is one contiguous run of image bytes in resolved address
// space.
type DataSegment struct {
	Address uint32
	Data    []byte
}

// DataSegments resolves the set's data records into contiguous segments,
// sorted by address. Records that touch end-to-start are merged into one
// segment. Records that overlap fail with DataOverlap: a record set with
// conflicting claims on an address has no single segment view. Segment
// buffers are fresh copies and never alias record payloads.
func (rs *RecordSet) DataSegments() ([]DataSegment, error) {
	var segments []*DataSegment
	err := rs.eachData(func(addr uint64, data []byte) error {
		if len(data) == 0 {
			return nil
		}
		return addSegment(&segments, addr, data)
	})
	if err != nil {
		return nil, err
	}
	out := make([]DataSegment, len(segments))
	for i, s := range segments {
		out[i] = *s
	}
	return out, nil
}

// addSegment merges the span [addr, addr+len(data)) into the sorted segment
// list: appending to a segment that ends where the span starts, prepending
// to one that starts where the span ends, bridging two such neighbours, or
// opening a new segment.
func addSegment(segments *[]*DataSegment, addr uint64, data []byte) error {
	var before, after *DataSegment
	afterIndex := -1
	end := addr + uint64(len(data))
	for i, s := range *segments {
		sStart := uint64(s.Address)
		sEnd := sStart + uint64(len(s.Data))
		if addr < sEnd && end > sStart {
			return newError(DataOverlap, 0, "data records overlap at 0x%08X", max(addr, sStart))
		}
		if addr == sEnd {
			before = s
		}
		if end == sStart {
			after, afterIndex = s, i
		}
	}

	switch {
	case before != nil && after != nil:
		before.Data = append(before.Data, data...)
		before.Data = append(before.Data, after.Data...)
		*segments = append((*segments)[:afterIndex], (*segments)[afterIndex+1:]...)
	case before != nil:
		before.Data = append(before.Data, data...)
	case after != nil:
		joined := make([]byte, 0, len(data)+len(after.Data))
		joined = append(joined, data...)
		joined = append(joined, after.Data...)
		after.Address = uint32(addr)
		after.Data = joined
	default:
		fresh := make([]byte, len(data))
		copy(fresh, data)
		*segments = append(*segments, &DataSegment{Address: uint32(addr), Data: fresh})
	}
	sort.Slice(*segments, func(i, j int) bool {
		return (*segments)[i].Address < (*segments)[j].Address
	})
	return nil
}

// ToBinary renders the address window [address, address+size) as a flat
// byte image. Locations no data record covers hold the padding byte.
// Segment resolution failures (DataOverlap, malformed extended address
// payloads) propagate unchanged.
func (rs *RecordSet) ToBinary(address uint32, size uint32, padding byte) ([]byte, error) {
	segments, err := rs.DataSegments()
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	for i := range out {
		out[i] = padding
	}
	winLo := uint64(address)
	winHi := winLo + uint64(size)
	for _, s := range segments {
		segLo := uint64(s.Address)
		segHi := segLo + uint64(len(s.Data))
		lo, hi := segLo, segHi
		if winLo > lo {
			lo = winLo
		}
		if winHi < hi {
			hi = winHi
		}
		if lo >= hi {
			continue
		}
		copy(out[lo-winLo:], s.Data[lo-segLo:hi-segLo])
	}
	return out, nil
}
