package pdfmeta

import "strings"

// ErrorKind buckets per-file read/write failures for the error reports and
// the run statistics.
type ErrorKind string

const (
	ErrorNone       ErrorKind = ""
	ErrorEncrypted  ErrorKind = "Encrypted PDF"
	ErrorCorrupted  ErrorKind = "Corrupted PDF (EOF marker not found)"
	ErrorObject     ErrorKind = "Object resolution error"
	ErrorUnwritable ErrorKind = "Unwritable PDF"
	ErrorRead       ErrorKind = "Read error"
)

// Classify maps a raw library error onto one of the reportable buckets.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorNone
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "encrypt"), strings.Contains(msg, "password"):
		return ErrorEncrypted
	case strings.Contains(msg, "eof"), strings.Contains(msg, "end of file"):
		return ErrorCorrupted
	case strings.Contains(msg, "object"):
		return ErrorObject
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "read-only"):
		return ErrorUnwritable
	default:
		return ErrorRead
	}
}
