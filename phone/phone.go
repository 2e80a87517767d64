package phone

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Stress is the default stress digit assigned to vowel bases that the
// source alphabet does not mark for stress.
type Stress int

const (
	StressNone Stress = -1
	Stress0    Stress = 0
	Stress1    Stress = 1
	Stress2    Stress = 2
)

// ParseStress parses a command-line stress value: "0", "1", "2", or "none".
func ParseStress(s string) (Stress, error) {
	switch strings.ToLower(s) {
	case "none":
		return StressNone, nil
	case "0":
		return Stress0, nil
	case "1":
		return Stress1, nil
	case "2":
		return Stress2, nil
	}
	return StressNone, fmt.Errorf("invalid stress %q: must be 0, 1, 2, or 'none'", s)
}

func (s Stress) String() string {
	if s == StressNone {
		return "none"
	}
	return strconv.Itoa(int(s))
}

var arpabetPattern = regexp.MustCompile(`^[A-Z]{1,3}[0-2]?$`)

// Convert maps one IPA-like phone label to its ARPABET form.
//
// Labels that already look like ARPABET are returned as-is (never remapped),
// so converting twice is safe. Noise markers `spn` and `sil` are preserved
// in lowercase. Unknown labels pass through unchanged.
//
// Stress handling: table entries carrying an explicit digit (AH0, ER0) win
// over the policy; otherwise vowel bases get the default digit, consonants
// never do.
func Convert(label string, stress Stress) string {
	p := strings.TrimSpace(label)
	if p == "" {
		return label
	}

	lower := strings.ToLower(p)
	if lower == "spn" || lower == "sil" {
		return lower
	}

	// ARPABET detection is case-sensitive: lowercase source phones such as
	// "i" or "aj" must still reach the mapping table below.
	if arpabetPattern.MatchString(p) {
		if p == "SPN" {
			return "spn"
		}
		return p
	}

	base, ok := ipaToArpabet[p]
	if !ok {
		// MFA phones are usually lowercase already.
		base, ok = ipaToArpabet[lower]
	}
	if !ok {
		return p
	}

	up := strings.ToUpper(base)
	if c := up[len(up)-1]; c >= '0' && c <= '2' {
		return up
	}

	if vowelBases[up] && stress != StressNone {
		return up + strconv.Itoa(int(stress))
	}
	return up
}
