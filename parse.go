package ihex

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// recordOverhead is the fixed byte count of every record besides its data:
// length, two address bytes, type and checksum.
const recordOverhead = 5

// FromString decodes an Intel HEX record set from an in-memory string.
func FromString(s string) (*RecordSet, error) {
	return FromReader(strings.NewReader(s))
}

// FromReader decodes an Intel HEX record set from r, one record per line.
// Blank lines are skipped, hex digits may use either letter case, and
// anything after the end-of-file record is ignored. The returned set is
// complete and validated; on any failure no set is returned at all and the
// error is an *Error carrying the failed input line.
func FromReader(r io.Reader) (*RecordSet, error) {
	rs := &RecordSet{}
	scanner := bufio.NewScanner(r)
	var lineNum uint
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimRight(scanner.Bytes(), " \t\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		rec, err := parseRecordLine(line, lineNum)
		if err != nil {
			if err.Kind == WrongRecordLength && err.truncated && !moreRecords(scanner) {
				err.Kind = PrematureEOF
			}
			return nil, err
		}
		rs.records = append(rs.records, *rec)
		if rec.Type == EndOfFile {
			return rs, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapError(IOFailure, err, "reading input")
	}
	if len(rs.records) == 0 {
		return nil, newError(NoInput, 0, "no record lines found")
	}
	return nil, newError(NoEOF, lineNum, "input exhausted")
}

// moreRecords reports whether any line left in the scanner is non-blank.
// It decides between WrongRecordLength and PrematureEOF for a truncated
// record: only a truncation on the final record line means the input itself
// stopped mid-record.
func moreRecords(scanner *bufio.Scanner) bool {
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) > 0 {
			return true
		}
	}
	return false
}

// parseRecordLine decodes and validates one record line. The caller has
// trimmed the line terminator and trailing whitespace. Validation order:
// the ':' lead-in, the five fixed header and checksum bytes, the type code,
// the length field against the actual digit count, the type's expected
// payload size, and finally the checksum invariant.
func parseRecordLine(line []byte, lineNum uint) (*Record, *Error) {
	if len(line) == 0 || line[0] != ':' {
		return nil, newError(SyntaxError, lineNum, "record does not start with ':'")
	}
	digits := line[1:]
	if len(digits) < 2*recordOverhead {
		err := newError(WrongRecordLength, lineNum, "record header incomplete: %d hex digits, want at least %d", len(digits), 2*recordOverhead)
		err.truncated = true
		return nil, err
	}

	length, derr := decodeUint8(digits[0:2])
	if derr != nil {
		return nil, derr.at(lineNum)
	}
	address, derr := decodeUint16(digits[2:6])
	if derr != nil {
		return nil, derr.at(lineNum)
	}
	typ, derr := decodeUint8(digits[6:8])
	if derr != nil {
		return nil, derr.at(lineNum)
	}
	if typ > uint8(StartLinearAddress) {
		return nil, newError(UnknownRecordType, lineNum, "type code 0x%02X is not defined", typ)
	}

	want := 2 * (recordOverhead + int(length))
	if len(digits) != want {
		err := newError(WrongRecordLength, lineNum, "length field declares %d data bytes but the line has %d hex digits, want %d", length, len(digits), want)
		err.truncated = len(digits) < want
		return nil, err
	}

	data := make([]byte, length)
	for i := range data {
		b, derr := decodeUint8(digits[8+2*i:])
		if derr != nil {
			return nil, derr.at(lineNum)
		}
		data[i] = b
	}
	checksum, derr := decodeUint8(digits[len(digits)-2:])
	if derr != nil {
		return nil, derr.at(lineNum)
	}

	rec := &Record{
		Length:   length,
		Type:     RecordType(typ),
		Address:  address,
		Data:     data,
		Checksum: checksum,
	}
	if size, ok := payloadSize[rec.Type]; ok && int(length) != size {
		return nil, newError(WrongRecordLength, lineNum, "%s record carries %d data bytes, want %d", rec.Type, length, size)
	}
	if !rec.ChecksumValid() {
		return nil, newError(IncorrectChecksum, lineNum, "checksum 0x%02X does not close the record, want 0x%02X", checksum, recordChecksum(length, address, rec.Type, data))
	}
	return rec, nil
}
