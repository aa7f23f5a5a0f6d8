package common

import (
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Trim0xPrefix removes a leading "0x"/"0X" if present. Bridge payloads
// arrive both with and without it.
func Trim0xPrefix(str string) string {
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		return str[2:]
	}
	return str
}

// Prepend0xPrefix adds the "0x" prefix if not already there.
func Prepend0xPrefix(str string) string {
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		return str
	}
	return "0x" + str
}

// ByteSliceToPureHexStr encodes bytes as hex with no 0x prefix.
func ByteSliceToPureHexStr(b []byte) string {
	return Trim0xPrefix(ethcommon.Bytes2Hex(b))
}

// HexStrToByteSlice decodes a hex string with or without 0x prefix.
// Invalid input yields an empty slice.
func HexStrToByteSlice(hexStr string) []byte {
	return ethcommon.Hex2Bytes(Trim0xPrefix(hexStr))
}

// IsHexStr reports whether the string (prefix stripped) is non-empty,
// even-length hex.
func IsHexStr(str string) bool {
	s := Trim0xPrefix(str)
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
