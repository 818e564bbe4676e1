package classfile

import "fmt"

// Method is a fully resolved method record. The Code attribute, when
// present, is decoded structurally; all other attributes stay opaque.
type Method struct {
	Flags      MethodAccessFlags
	Name       string
	Descriptor string
	Code       *CodeAttribute
	Exceptions []string
	Attributes []Attribute
}

// Signature parses the method's descriptor.
func (m *Method) Signature() (*MethodDescriptor, error) {
	return ParseMethodDescriptor(m.Descriptor)
}

// Attribute returns the named attribute record, or nil.
func (m *Method) Attribute(name string) *Attribute {
	for i := range m.Attributes {
		if m.Attributes[i].Name == name {
			return &m.Attributes[i]
		}
	}
	return nil
}

func (m *Method) IsConstructor() bool {
	return m.Name == "<init>"
}

func (m *Method) IsStaticInitializer() bool {
	return m.Name == "<clinit>"
}

func (m *Method) String() string {
	return fmt.Sprintf("%s %s%s", m.Flags, m.Name, m.Descriptor)
}
