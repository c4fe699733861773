package domain

// EngineKind identifies one of the two OCR engines the pipeline can invoke.
type EngineKind string

const (
	// EngineTrOCR is the transformer-based recognizer, preferred for invoices.
	EngineTrOCR EngineKind = "trocr"
	// EngineTesseract is the general-purpose OCR engine and the fallback of last resort.
	EngineTesseract EngineKind = "tesseract"
)

// Other returns the opposite engine, used for the ensemble second opinion.
func (e EngineKind) Other() EngineKind {
	if e == EngineTrOCR {
		return EngineTesseract
	}
	return EngineTrOCR
}

// ValidationStatus represents the outcome of field validation.
type ValidationStatus string

const (
	ValidationStatusNone      ValidationStatus = "none"
	ValidationStatusValid     ValidationStatus = "valid"
	ValidationStatusCorrected ValidationStatus = "corrected"
	ValidationStatusInvalid   ValidationStatus = "invalid"
)

// FileType represents the allowed image types for upload.
type FileType string

const (
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeTIFF FileType = "tiff"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
	"image/tiff": FileTypeTIFF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
}
