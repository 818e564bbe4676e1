package classfile

import "fmt"

// Field is a fully resolved field record. Name and Descriptor are the pool
// strings, ConstantValue is the decoded ConstantValue attribute if the field
// carries one.
type Field struct {
	Flags         FieldAccessFlags
	Name          string
	Descriptor    string
	ConstantValue ConstantValue
	Attributes    []Attribute
}

// Type parses the field's descriptor.
func (f *Field) Type() (*FieldType, error) {
	return ParseFieldDescriptor(f.Descriptor)
}

// Attribute returns the named attribute record, or nil.
func (f *Field) Attribute(name string) *Attribute {
	for i := range f.Attributes {
		if f.Attributes[i].Name == name {
			return &f.Attributes[i]
		}
	}
	return nil
}

func (f *Field) String() string {
	s := fmt.Sprintf("%s %s: %s", f.Flags, f.Name, f.Descriptor)
	if f.ConstantValue != nil {
		s += fmt.Sprintf(" = %v", f.ConstantValue)
	}
	return s
}
