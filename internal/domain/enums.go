package domain

// FileKind identifies the declared kind of an uploaded payload.
type FileKind string

const (
	FileKindPDF FileKind = "pdf"
	FileKindXML FileKind = "xml"
)

// KnownFileKinds maps accepted file kind strings to their FileKind.
var KnownFileKinds = map[string]FileKind{
	"pdf": FileKindPDF,
	"xml": FileKindXML,
}

// ParserType tags which parser family produced an advice.
type ParserType string

const (
	ParserTypePDF  ParserType = "pdf"
	ParserTypeCXML ParserType = "cxml"
)

const (
	// DefaultCurrency applies when no currency is detected in the document.
	DefaultCurrency = "INR"

	// ParseVersion is stamped on every advice for downstream auditing.
	ParseVersion = "1.0"
)
