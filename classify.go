package slidegen

import (
	"strings"

	"github.com/tidwall/gjson"
)

// User-facing texts. The explanation language is fixed, so are these.
const (
	GenericErrorText   = "Bilinmeyen bir hata oluştu"
	MissingMessageText = "Bilinmeyen hata"
	TimeoutText        = "İstek zaman aşımına uğradı. Lütfen tekrar deneyin."
	NoSlidesText       = "Hiçbir slayt oluşturulamadı. Lütfen farklı bir soru deneyin."
)

const errorObjectMarker = `{"error":`

// ClassifyError maps a failure value to a message for the user.
//
// Strings and errors are scanned for an embedded {"error": {...}} object, in
// which case its message is returned. Text without a parseable object is
// returned verbatim. Any other value yields GenericErrorText.
func ClassifyError(v any) string {
	switch e := v.(type) {
	case string:
		return classifyText(e)
	case error:
		return classifyText(e.Error())
	default:
		return GenericErrorText
	}
}

func classifyText(text string) string {
	obj, ok := embeddedErrorObject(text)
	if !ok || !gjson.Valid(obj) {
		return text
	}

	msg := gjson.Get(obj, "error.message")
	if !msg.Exists() || msg.String() == "" {
		return MissingMessageText
	}
	return msg.String()
}

// embeddedErrorObject returns the span from the first {"error": marker to the
// last closing brace on the same line.
func embeddedErrorObject(text string) (string, bool) {
	start := strings.Index(text, errorObjectMarker)
	if start < 0 {
		return "", false
	}

	line := text[start:]
	if nl := strings.IndexAny(line, "\r\n"); nl >= 0 {
		line = line[:nl]
	}

	end := strings.LastIndexByte(line, '}')
	if end <= len(errorObjectMarker) {
		return "", false
	}
	return line[:end+1], true
}
