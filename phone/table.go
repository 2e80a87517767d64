// Mapping from MFA/english_mfa IPA-like phone labels to ARPABET phonemes.
// The MFA set uses ASCII-ish diphthongs such as `aj`, `aw`, `ej`, `ow`, `ɔj`
// alongside the canonical IPA forms, so both spellings are accepted.
// Table values are stress-less where that is meaningful; stress is applied
// later, except for the schwa variants which are always 0.
package phone

// vowelBases are the ARPABET bases that take a stress digit.
var vowelBases = map[string]bool{
	"AA": true,
	"AE": true,
	"AH": true,
	"AO": true,
	"AW": true,
	"AY": true,
	"EH": true,
	"ER": true,
	"EY": true,
	"IH": true,
	"IY": true,
	"OW": true,
	"OY": true,
	"UH": true,
	"UW": true,
}

var ipaToArpabet = map[string]string{
	// Vowels
	"ɑ": "AA",
	"æ": "AE",
	"ʌ": "AH",
	"ə": "AH0", // schwa
	"ɔ": "AO",

	// Diphthongs (canonical IPA)
	"aɪ": "AY",
	"aʊ": "AW",
	"eɪ": "EY",
	"oʊ": "OW",
	"ɔɪ": "OY",

	// Diphthongs (MFA/english_mfa style)
	"aj": "AY",
	"aw": "AW",
	"ej": "EY",
	"ow": "OW",
	"ɔj": "OY",

	// Rhotic vowels (canonical IPA forms)
	"ɜr": "ER",
	"ər": "ER0",

	// Rhotic vowels (common single symbols)
	"ɝ": "ER",
	"ɚ": "ER0",

	// Non-rhotic high vowels
	"ɪ": "IH",
	"i": "IY",
	"ʊ": "UH",
	"u": "UW",

	// Consonants
	"b":  "B",
	"tʃ": "CH",
	"d":  "D",
	"ð":  "DH",
	"ɛ":  "EH",
	"f":  "F",
	"ɡ":  "G", // LATIN SMALL LETTER SCRIPT G
	"g":  "G",
	"h":  "HH",
	"dʒ": "JH",
	"k":  "K",
	"l":  "L",
	"m":  "M",
	"n":  "N",
	"ŋ":  "NG",
	"p":  "P",
	"r":  "R",
	"ɹ":  "R",
	"s":  "S",
	"ʃ":  "SH",
	"t":  "T",
	"θ":  "TH",
	"v":  "V",
	"w":  "W",
	"j":  "Y",
	"z":  "Z",
	"ʒ":  "ZH",

	// Noise
	"spn": "spn",
	"sil": "sil",
}

// IsVowelBase reports whether s is an ARPABET vowel base (no stress digit).
func IsVowelBase(s string) bool {
	return vowelBases[s]
}
