package parser

// FieldType is the dBASE field type byte
type FieldType byte

// Field types recognised in a field descriptor.
const (
	FieldCharacter     FieldType = 'C'
	FieldDate          FieldType = 'D'
	FieldFloatingPoint FieldType = 'F'
	FieldLogical       FieldType = 'L'
	FieldMemo          FieldType = 'M'
	FieldNumeric       FieldType = 'N'
)

// FieldTypeFromCode maps a descriptor type byte to a FieldType.
// Anything outside the six defined codes returns *ErrUnknownFieldType.
func FieldTypeFromCode(code byte, field int, offset int64) (FieldType, error) {
	switch t := FieldType(code); t {
	case FieldCharacter, FieldDate, FieldFloatingPoint, FieldLogical, FieldMemo, FieldNumeric:
		return t, nil
	default:
		return 0, &ErrUnknownFieldType{Code: code, Field: field, Offset: offset}
	}
}

func (t FieldType) String() string {
	switch t {
	case FieldCharacter:
		return "Character"
	case FieldDate:
		return "Date"
	case FieldFloatingPoint:
		return "FloatingPoint"
	case FieldLogical:
		return "Logical"
	case FieldMemo:
		return "Memo"
	case FieldNumeric:
		return "Numeric"
	default:
		return "Unknown"
	}
}

// Decodable reports whether values of this type are decoded to text.
// Date, FloatingPoint, Logical and Memo are recognised but not decoded yet.
func (t FieldType) Decodable() bool {
	return t == FieldCharacter || t == FieldNumeric
}
