package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/bosley/arpamap/phone"
)

func TestConvertPerFileObject(t *testing.T) {
	doc := []byte(`{"words":[{"text":"cat","xmin":0,"xmax":0.3}],"phones":[{"text":"t","xmin":0,"xmax":0.1},{"text":"æ","xmin":0.1,"xmax":0.2}]}`)

	out, err := Convert(doc, phone.Stress1)
	require.NoError(t, err)

	assert.Equal(t, "T", gjson.GetBytes(out, "phones.0.text").String())
	assert.Equal(t, "AE1", gjson.GetBytes(out, "phones.1.text").String())
	assert.Equal(t, 0.1, gjson.GetBytes(out, "phones.0.xmax").Float())
	assert.Equal(t, 0.2, gjson.GetBytes(out, "phones.1.xmax").Float())

	// words is not a phones container; its labels stay verbatim.
	assert.Equal(t, "cat", gjson.GetBytes(out, "words.0.text").String())
}

func TestConvertPhonesObjectContainer(t *testing.T) {
	doc := []byte(`{"words":[],"phones":{"0":{"text":"ɔ"},"1":{"text":"spn"}}}`)

	out, err := Convert(doc, phone.Stress2)
	require.NoError(t, err)

	assert.Equal(t, "AO2", gjson.GetBytes(out, "phones.0.text").String())
	assert.Equal(t, "spn", gjson.GetBytes(out, "phones.1.text").String())
}

func TestConvertFilenameMapping(t *testing.T) {
	doc := []byte(`{"a.wav":{"words":[],"phones":[{"text":"i"}]},"b.wav":{"words":[],"phones":[{"text":"ŋ"}]},"note":"ignored"}`)

	out, err := Convert(doc, phone.Stress1)
	require.NoError(t, err)

	assert.Equal(t, "IY1", gjson.GetBytes(out, `a\.wav.phones.0.text`).String())
	assert.Equal(t, "NG", gjson.GetBytes(out, `b\.wav.phones.0.text`).String())
	assert.Equal(t, "ignored", gjson.GetBytes(out, "note").String())

	// Outer key order survives the rewrite.
	s := string(out)
	assert.Less(t, strings.Index(s, `"a.wav"`), strings.Index(s, `"b.wav"`))
	assert.Less(t, strings.Index(s, `"b.wav"`), strings.Index(s, `"note"`))
}

func TestConvertKeyOrderPreserved(t *testing.T) {
	doc := []byte(`{"zebra":{"phones":[{"text":"s"}]},"apple":{"phones":[{"text":"z"}]}}`)

	out, err := Convert(doc, phone.Stress1)
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, `"zebra"`), strings.Index(s, `"apple"`))
	assert.Equal(t, "S", gjson.GetBytes(out, "zebra.phones.0.text").String())
	assert.Equal(t, "Z", gjson.GetBytes(out, "apple.phones.0.text").String())
}

func TestConvertSkipsOddIntervals(t *testing.T) {
	doc := []byte(`{"words":[],"phones":[{"xmin":0,"xmax":1},{"text":42},{"text":"d"},"stray"]}`)

	out, err := Convert(doc, phone.Stress1)
	require.NoError(t, err)

	assert.False(t, gjson.GetBytes(out, "phones.0.text").Exists())
	assert.Equal(t, int64(42), gjson.GetBytes(out, "phones.1.text").Int())
	assert.Equal(t, "D", gjson.GetBytes(out, "phones.2.text").String())
	assert.Equal(t, "stray", gjson.GetBytes(out, "phones.3").String())
}

func TestConvertUnrecognizedShapes(t *testing.T) {
	for _, doc := range []string{`[1,2,3]`, `"just a string"`, `42`, `null`, `{"phones":"not a container","words":[]}`} {
		out, err := Convert([]byte(doc), phone.Stress1)
		require.NoError(t, err, doc)
		assert.Equal(t, doc, string(out), doc)
	}
}

func TestConvertUnknownLabelsUntouched(t *testing.T) {
	doc := []byte(`{"words":[],"phones":[{"text":"ʘ"},{"text":""}]}`)

	out, err := Convert(doc, phone.Stress1)
	require.NoError(t, err)

	assert.Equal(t, "ʘ", gjson.GetBytes(out, "phones.0.text").String())
	assert.Equal(t, "", gjson.GetBytes(out, "phones.1.text").String())
}

func TestConvertInvalidJSON(t *testing.T) {
	_, err := Convert([]byte(`{"phones": [`), phone.Stress1)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestFormat(t *testing.T) {
	out := Format([]byte(`{"b":1,"a":{"text":"ɔ"}}`))

	s := string(out)
	assert.True(t, strings.HasSuffix(s, "\n"))
	assert.Contains(t, s, "  ") // two-space indent
	assert.Contains(t, s, "ɔ") // non-ASCII stays literal
	assert.Less(t, strings.Index(s, `"b"`), strings.Index(s, `"a"`))

	reparsed := gjson.ParseBytes(out)
	assert.Equal(t, int64(1), reparsed.Get("b").Int())
	assert.Equal(t, "ɔ", reparsed.Get("a.text").String())
}
