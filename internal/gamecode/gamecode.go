// Package gamecode converts between the host runtime's integer room codes
// and their displayed letter form. Version 1 codes are non-negative and
// carry four raw characters; version 2 codes are negative and encode six
// letters from a fixed alphabet.
package gamecode

import "fmt"

const v2Alphabet = "QWXRTYLPESDFGHUJKZOCVBINMA"

var v2Index = buildV2Index()

func buildV2Index() [26]int32 {
	var index [26]int32
	for i := range index {
		index[i] = -1
	}
	for i, c := range v2Alphabet {
		index[c-'A'] = int32(i)
	}
	return index
}

// IntToString renders a room code in its displayed form. The mapping is
// deterministic and collision-free over valid codes.
func IntToString(code int32) string {
	if code >= 0 {
		return string([]byte{
			byte(code),
			byte(code >> 8),
			byte(code >> 16),
			byte(code >> 24),
		})
	}
	a := code & 0x3ff
	b := (code >> 10) & 0xfffff
	return string([]byte{
		v2Alphabet[a%26],
		v2Alphabet[a/26%26],
		v2Alphabet[b%26],
		v2Alphabet[b/26%26],
		v2Alphabet[b/(26*26)%26],
		v2Alphabet[b/(26*26*26)%26],
	})
}

// StringToInt parses a displayed room code back to its integer form.
func StringToInt(code string) (int32, error) {
	switch len(code) {
	case 4:
		return int32(code[0]) | int32(code[1])<<8 | int32(code[2])<<16 | int32(code[3])<<24, nil
	case 6:
		letters := [6]int32{}
		for i := 0; i < 6; i++ {
			c := code[i]
			if c < 'A' || c > 'Z' || v2Index[c-'A'] < 0 {
				return 0, fmt.Errorf("invalid room code character %q", c)
			}
			letters[i] = v2Index[c-'A']
		}
		a := letters[0] + 26*letters[1]
		b := letters[2] + 26*(letters[3]+26*(letters[4]+26*letters[5]))
		return int32(uint32(a&0x3ff) | uint32(b&0xfffff)<<10 | 0x80000000), nil
	default:
		return 0, fmt.Errorf("invalid room code length %d", len(code))
	}
}
