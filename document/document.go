// Rewrites phone labels inside timestamp JSON documents. The documents come
// from a forced aligner and their schema must survive conversion untouched,
// including member order, so the rewrite works on the raw bytes instead of
// decoding into Go maps.
package document

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/bosley/arpamap/phone"
)

// ErrInvalidJSON is returned when the input bytes are not a JSON document.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Keys are used as gjson/sjson path components, so filename keys such as
// "a.wav" need their special characters escaped to address the literal member.
var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

// Convert replaces IPA-like phone labels with ARPABET throughout a timestamp
// document. Two shapes are recognized: a single per-file object carrying
// sibling "words" and "phones" members, and a filename -> per-file mapping.
// Anything else is returned unchanged. Only string "text" members inside
// "phones" containers are rewritten; every other byte of the document is
// preserved.
func Convert(doc []byte, stress phone.Stress) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return doc, nil
	}

	if root.Get("words").Exists() && root.Get("phones").Exists() {
		return convertPhones(doc, "phones", stress)
	}

	var err error
	root.ForEach(func(key, perFile gjson.Result) bool {
		if perFile.IsObject() && perFile.Get("phones").Exists() {
			doc, err = convertPhones(doc, keyEscaper.Replace(key.String())+".phones", stress)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// convertPhones rewrites the "text" member of every interval in the phones
// container at path. The container may be an object keyed by index or an
// ordered array; intervals without a string "text" member are skipped.
func convertPhones(doc []byte, path string, stress phone.Stress) ([]byte, error) {
	container := gjson.GetBytes(doc, path)
	if !container.IsObject() && !container.IsArray() {
		return doc, nil
	}

	isArray := container.IsArray()
	var err error
	idx := 0
	container.ForEach(func(key, interval gjson.Result) bool {
		elem := path + "."
		if isArray {
			elem += strconv.Itoa(idx)
		} else {
			elem += keyEscaper.Replace(key.String())
		}
		idx++

		if !interval.IsObject() {
			return true
		}
		text := interval.Get("text")
		if text.Type != gjson.String {
			return true
		}

		converted := phone.Convert(text.String(), stress)
		if converted != text.String() {
			doc, err = sjson.SetBytes(doc, elem+".text", converted)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Format renders a document with stable two-space indentation and a trailing
// newline. Member order is kept and string values are never re-escaped, so
// non-ASCII labels stay literal.
func Format(doc []byte) []byte {
	out := pretty.PrettyOptions(doc, &pretty.Options{Width: 80, Indent: "  "})
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out
}
