package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPolicies = []Stress{StressNone, Stress0, Stress1, Stress2}

func TestParseStress(t *testing.T) {
	for in, want := range map[string]Stress{
		"0":    Stress0,
		"1":    Stress1,
		"2":    Stress2,
		"none": StressNone,
		"NONE": StressNone,
	} {
		got, err := ParseStress(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"3", "-1", "", "primary", "01"} {
		_, err := ParseStress(in)
		assert.Error(t, err, in)
	}
}

func TestConvertDefaultStress(t *testing.T) {
	assert.Equal(t, "IY1", Convert("i", Stress1))
	assert.Equal(t, "IY0", Convert("i", Stress0))
	assert.Equal(t, "IY2", Convert("i", Stress2))
	assert.Equal(t, "IY", Convert("i", StressNone))
}

func TestConvertFixedStressWins(t *testing.T) {
	for _, s := range allPolicies {
		assert.Equal(t, "AH0", Convert("ə", s), "schwa under %v", s)
		assert.Equal(t, "ER0", Convert("ɚ", s), "rhotic schwa under %v", s)
		assert.Equal(t, "ER0", Convert("ər", s), "ər under %v", s)
	}
}

func TestConvertNoiseTokens(t *testing.T) {
	for _, s := range allPolicies {
		assert.Equal(t, "spn", Convert("spn", s))
		assert.Equal(t, "spn", Convert("SPN", s))
		assert.Equal(t, "sil", Convert("sil", s))
		assert.Equal(t, "sil", Convert("SIL", s))
		assert.Equal(t, "sil", Convert(" sil ", s))
	}
}

func TestConvertConsonantsNeverStressed(t *testing.T) {
	assert.Equal(t, "T", Convert("t", Stress1))
	assert.Equal(t, "CH", Convert("tʃ", Stress1))
	assert.Equal(t, "SH", Convert("ʃ", Stress2))
	assert.Equal(t, "NG", Convert("ŋ", Stress0))
	assert.Equal(t, "JH", Convert("dʒ", Stress1))
}

func TestConvertDiphthongSpellings(t *testing.T) {
	pairs := map[string]string{
		"aɪ": "AY", "aj": "AY",
		"aʊ": "AW", "aw": "AW",
		"eɪ": "EY", "ej": "EY",
		"oʊ": "OW", "ow": "OW",
		"ɔɪ": "OY", "ɔj": "OY",
	}
	for in, base := range pairs {
		assert.Equal(t, base+"1", Convert(in, Stress1), in)
		assert.Equal(t, base, Convert(in, StressNone), in)
	}
}

func TestConvertIdempotent(t *testing.T) {
	inputs := []string{"ɑ", "ə", "aj", "i", "t", "spn", "SIL", "ʘ", "IH1", "ER0"}
	for _, s := range allPolicies {
		for _, in := range inputs {
			once := Convert(in, s)
			assert.Equal(t, once, Convert(once, s), "Convert(%q, %v)", in, s)
		}
	}
}

func TestConvertARPABETPassthrough(t *testing.T) {
	for _, in := range []string{"AY1", "IY", "T", "ER0", "HH", "NG2", "I", "U"} {
		assert.Equal(t, in, Convert(in, Stress1), in)
	}
}

func TestConvertUnknownPassthrough(t *testing.T) {
	assert.Equal(t, "ʘ", Convert("ʘ", Stress1))
	assert.Equal(t, "x͡y", Convert("x͡y", Stress2))
}

func TestConvertBlankPassthrough(t *testing.T) {
	assert.Equal(t, "", Convert("", Stress1))
	assert.Equal(t, "  ", Convert("  ", Stress1))
	assert.Equal(t, "\t", Convert("\t", StressNone))
}

func TestConvertTrimsLabels(t *testing.T) {
	assert.Equal(t, "AO2", Convert(" ɔ ", Stress2))
	assert.Equal(t, "AA1", Convert("ɑ\n", Stress1))
}

func TestIsVowelBase(t *testing.T) {
	assert.True(t, IsVowelBase("AA"))
	assert.True(t, IsVowelBase("UW"))
	assert.False(t, IsVowelBase("T"))
	assert.False(t, IsVowelBase("AH0"))
	assert.False(t, IsVowelBase("aa"))
}
