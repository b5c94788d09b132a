// Package dnsname converts domain names between their dotted presentation
// form and the length-prefixed label form used on the wire (RFC 1035 §3.1),
// including message compression pointers (RFC 1035 §4.1.4).
package dnsname

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

const (
	// MaxLabelLength is the longest label a length byte may announce.
	MaxLabelLength = 63

	// pointerMask marks a compression pointer in the top two bits of a length byte.
	pointerMask = 0xC0
	// offsetMask extracts the 14-bit target offset from a pointer byte pair.
	offsetMask = 0x3FFF
)

// Encode converts a dotted name into wire form without compression.
// A single trailing dot is accepted as the fully-qualified spelling of the
// same name, and "." alone encodes the root.
func Encode(name string) ([]byte, error) {
	if name == "" {
		return nil, domain.NewError(domain.KindEmptyLabel, "domain name must not be empty")
	}
	if name == "." {
		return []byte{0}, nil
	}
	name = strings.TrimSuffix(name, ".")

	labels := strings.Split(name, ".")
	encoded := make([]byte, 0, len(name)+2)
	for _, label := range labels {
		if len(label) == 0 {
			return nil, domain.NewError(domain.KindEmptyLabel, fmt.Sprintf("empty label in %q", name))
		}
		if len(label) > MaxLabelLength {
			return nil, domain.NewError(domain.KindLabelTooLong, fmt.Sprintf("label too long (%d bytes): %s", len(label), label))
		}
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, label...)
	}
	return append(encoded, 0), nil
}

// Decode reads the name starting at off in msg and returns it in dotted form
// together with the number of bytes the name occupies at off (the bytes up to
// and including the terminating zero or the first pointer pair).
//
// Pointers are followed iteratively. Every pointer must target an offset
// strictly below both its own position and every target already followed,
// so the walk always terminates within len(msg) steps.
func Decode(msg []byte, off int) (string, int, error) {
	var labels []string
	cursor := off
	consumed := -1
	limit := len(msg)

	for {
		if cursor < 0 || cursor >= len(msg) {
			return "", 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("name at offset %d runs past end of message", off))
		}
		b := msg[cursor]

		switch {
		case b == 0:
			if consumed < 0 {
				consumed = cursor + 1 - off
			}
			return join(labels), consumed, nil

		case b&pointerMask == pointerMask:
			if cursor+1 >= len(msg) {
				return "", 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("compression pointer at offset %d is cut short", cursor))
			}
			target := int(binary.BigEndian.Uint16(msg[cursor:cursor+2]) & offsetMask)
			if target >= cursor || target >= limit {
				return "", 0, domain.NewError(domain.KindPointerCycle, fmt.Sprintf("compression pointer at offset %d targets %d, not strictly before %d", cursor, target, min(cursor, limit)))
			}
			if consumed < 0 {
				consumed = cursor + 2 - off
			}
			limit = target
			cursor = target

		case b&pointerMask != 0:
			return "", 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("reserved label type 0x%02X at offset %d", b&pointerMask, cursor))

		default:
			length := int(b)
			start := cursor + 1
			if start+length > len(msg) {
				return "", 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("label at offset %d of length %d runs past end of message", cursor, length))
			}
			labels = append(labels, string(msg[start:start+length]))
			cursor = start + length
		}
	}
}

// Skip returns the offset just past the name starting at off without
// following pointers or inspecting label contents.
func Skip(msg []byte, off int) (int, error) {
	cursor := off
	for {
		if cursor < 0 || cursor >= len(msg) {
			return 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("name at offset %d runs past end of message", off))
		}
		b := msg[cursor]
		switch {
		case b == 0:
			return cursor + 1, nil
		case b&pointerMask == pointerMask:
			if cursor+1 >= len(msg) {
				return 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("compression pointer at offset %d is cut short", cursor))
			}
			return cursor + 2, nil
		case b&pointerMask != 0:
			return 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("reserved label type 0x%02X at offset %d", b&pointerMask, cursor))
		default:
			cursor += 1 + int(b)
			if cursor > len(msg) {
				return 0, domain.NewError(domain.KindMalformedLabel, fmt.Sprintf("name at offset %d runs past end of message", off))
			}
		}
	}
}

func join(labels []string) string {
	if len(labels) == 0 {
		return "."
	}
	return strings.Join(labels, ".")
}
