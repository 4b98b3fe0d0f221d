// Package format holds the scalar field-type enumeration shared by the
// schema and fieldcodec packages. It is deliberately small: the file
// codec itself is agnostic to the set of scalar types (see the
// fieldcodec package for the actual width/layout contract).
package format

// Type identifies a YXDB scalar field kind.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeBool
	TypeByte
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat
	TypeDouble
	TypeFixedDecimal
	TypeString
	TypeWString
	TypeDate
	TypeDateTime
	TypeVString
	TypeVWString
	TypeBlob
	TypeSpatialObject
)

// xmlNames is the canonical, case-sensitive XML type-name mapping used
// by the schema codec on both encode and decode.
var xmlNames = [...]string{
	TypeUnknown:       "Unknown",
	TypeBool:          "Bool",
	TypeByte:          "Byte",
	TypeInt16:         "Int16",
	TypeInt32:         "Int32",
	TypeInt64:         "Int64",
	TypeFloat:         "Float",
	TypeDouble:        "Double",
	TypeFixedDecimal:  "FixedDecimal",
	TypeString:        "String",
	TypeWString:       "WString",
	TypeDate:          "Date",
	TypeDateTime:      "DateTime",
	TypeVString:       "V_String",
	TypeVWString:      "V_WString",
	TypeBlob:          "Blob",
	TypeSpatialObject: "SpatialObj",
}

// String returns the XML attribute spelling of the type.
func (t Type) String() string {
	if int(t) < len(xmlNames) {
		return xmlNames[t]
	}

	return "Unknown"
}

// ParseType maps an XML type attribute value to a Type. ok is false for
// any string not in the fixed lookup.
func ParseType(s string) (t Type, ok bool) {
	for i, name := range xmlNames {
		if name == s {
			return Type(i), true
		}
	}

	return TypeUnknown, false
}

// IsVariable reports whether t is a variable-width type: the record
// codec must consume an opaque variable-data tail for these after the
// fixed portion.
func (t Type) IsVariable() bool {
	switch t {
	case TypeVString, TypeVWString, TypeBlob:
		return true
	default:
		return false
	}
}
