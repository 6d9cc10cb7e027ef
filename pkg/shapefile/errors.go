package shapefile

import (
	"github.com/beetlebugorg/shapefile/internal/parser"
	"github.com/beetlebugorg/shapefile/internal/spatial"
)

// Decoding errors. Match them with errors.As; every type carries the byte
// offset and the expected and actual values where they apply.
type (
	ErrTruncatedInput             = parser.ErrTruncatedInput
	ErrBadMagic                   = parser.ErrBadMagic
	ErrUnknownShapeType           = parser.ErrUnknownShapeType
	ErrUnsupportedShapeType       = parser.ErrUnsupportedShapeType
	ErrFrameLengthMismatch        = parser.ErrFrameLengthMismatch
	ErrPartReconstructionMismatch = parser.ErrPartReconstructionMismatch
	ErrHeaderTooShort             = parser.ErrHeaderTooShort
	ErrMisalignedFieldTable       = parser.ErrMisalignedFieldTable
	ErrMissingTerminator          = parser.ErrMissingTerminator
	ErrInvalidFieldName           = parser.ErrInvalidFieldName
	ErrUnknownFieldType           = parser.ErrUnknownFieldType
	ErrUnsupportedFieldType       = parser.ErrUnsupportedFieldType
	ErrUnexpectedRecordFlag       = parser.ErrUnexpectedRecordFlag
	ErrInvalidText                = parser.ErrInvalidText
	ErrUnknownCodePage            = parser.ErrUnknownCodePage
)

// Join errors.
type (
	ErrRecordCountMismatch      = spatial.ErrRecordCountMismatch
	ErrMultiPartLineUnsupported = spatial.ErrMultiPartLineUnsupported
	ErrMissingField             = spatial.ErrMissingField
)

// FrameScope says whether a length mismatch was found in a record or the whole file.
type FrameScope = parser.FrameScope

const (
	FrameRecord = parser.FrameRecord
	FrameFile   = parser.FrameFile
)
