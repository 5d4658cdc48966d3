// workbook/biff.go
package workbook

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/extrame/ole2"
)

// BIFF8 record types needed to locate merged regions.
const (
	recEOF         = 0x000A
	recBoundSheet  = 0x0085
	recMergedCells = 0x00E5
	recBOF         = 0x0809
)

var errNoWorkbookStream = errors.New("workbook stream not found in compound document")

// readWorkbookStream extracts the "Workbook" (or legacy "Book") stream from
// an OLE2 compound document.
func readWorkbookStream(data []byte) ([]byte, error) {
	ole, err := ole2.Open(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	dir, err := ole.ListDir()
	if err != nil {
		return nil, err
	}

	var book, root *ole2.File
	for _, file := range dir {
		switch file.Name() {
		case "Workbook":
			if book == nil {
				book = file
			}
		case "Book":
			book = file
		case "Root Entry":
			root = file
		}
	}
	if book == nil {
		return nil, errNoWorkbookStream
	}
	return io.ReadAll(ole.OpenFile(book, root))
}

// scanMergedCells walks the BIFF8 record stream and collects MERGEDCELLS
// ranges per sheet. Sheet substreams are matched to names through the
// stream offsets stored in BOUNDSHEET records.
func scanMergedCells(stream []byte) (map[string][]MergedRegion, error) {
	sheetAt := make(map[int]string)
	merged := make(map[string][]MergedRegion)

	// BOF/EOF가 중첩될 수 있으므로 (차트 등) 스택으로 현재 시트를 추적
	var stack []string
	current := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for pos := 0; pos+4 <= len(stream); {
		typ := binary.LittleEndian.Uint16(stream[pos:])
		size := int(binary.LittleEndian.Uint16(stream[pos+2:]))
		start := pos + 4
		if start+size > len(stream) {
			return nil, fmt.Errorf("record 0x%04X at offset %d overruns stream", typ, pos)
		}
		body := stream[start : start+size]

		switch typ {
		case recBoundSheet:
			offset, name, err := parseBoundSheet(body)
			if err != nil {
				return nil, err
			}
			sheetAt[offset] = name
		case recBOF:
			stack = append(stack, sheetAt[pos])
		case recEOF:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case recMergedCells:
			if name := current(); name != "" {
				merged[name] = append(merged[name], parseMergedCells(body)...)
			}
		}

		pos = start + size
	}
	return merged, nil
}

// parseBoundSheet decodes lbPlyPos and the sheet name of a BOUNDSHEET record.
func parseBoundSheet(body []byte) (int, string, error) {
	if len(body) < 8 {
		return 0, "", fmt.Errorf("short BOUNDSHEET record (%d bytes)", len(body))
	}
	offset := int(binary.LittleEndian.Uint32(body[0:4]))
	cch := int(body[6])
	highByte := body[7]&0x01 != 0

	chars := body[8:]
	if highByte {
		if len(chars) < cch*2 {
			return 0, "", fmt.Errorf("short BOUNDSHEET name")
		}
		units := make([]uint16, cch)
		for i := range units {
			units[i] = binary.LittleEndian.Uint16(chars[i*2:])
		}
		return offset, string(utf16.Decode(units)), nil
	}

	if len(chars) < cch {
		return 0, "", fmt.Errorf("short BOUNDSHEET name")
	}
	// 압축된 문자열: 각 바이트가 하나의 코드 포인트 (Latin-1)
	runes := make([]rune, cch)
	for i := 0; i < cch; i++ {
		runes[i] = rune(chars[i])
	}
	return offset, string(runes), nil
}

// parseMergedCells decodes the Ref8 ranges of a MERGEDCELLS record.
func parseMergedCells(body []byte) []MergedRegion {
	if len(body) < 2 {
		return nil
	}
	count := int(binary.LittleEndian.Uint16(body[0:2]))
	regions := make([]MergedRegion, 0, count)
	for i := 0; i < count; i++ {
		off := 2 + i*8
		if off+8 > len(body) {
			break
		}
		regions = append(regions, MergedRegion{
			FirstRow:    int(binary.LittleEndian.Uint16(body[off:])),
			LastRow:     int(binary.LittleEndian.Uint16(body[off+2:])),
			FirstColumn: int(binary.LittleEndian.Uint16(body[off+4:])),
			LastColumn:  int(binary.LittleEndian.Uint16(body[off+6:])),
		})
	}
	return regions
}
