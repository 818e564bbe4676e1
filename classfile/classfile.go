// Package classfile decodes the Java class file binary format into a fully
// resolved, immutable in-memory representation. Parsing is strict: any
// structural defect aborts the whole parse with a typed error, and the
// returned structure never exposes raw constant pool indices.
package classfile

import (
	"fmt"
	"strings"
)

// ClassFile is the parse result. Every name and descriptor has already been
// resolved through the constant pool; the pool itself is retained only for
// diagnostic rendering.
type ClassFile struct {
	Version      Version
	MinorVersion uint16
	MajorVersion uint16
	Flags        ClassAccessFlags
	Name         string
	Superclass   string // empty for java/lang/Object itself
	Interfaces   []string
	Fields       []Field
	Methods      []Method
	SourceFile   string
	Attributes   []Attribute
	Pool         *ConstantPool
}

func (cf *ClassFile) IsInterface() bool {
	return cf.Flags.IsInterface() && !cf.Flags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.Flags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.Flags.IsEnum()
}

// Field returns the named field, or nil.
func (cf *ClassFile) Field(name string) *Field {
	for i := range cf.Fields {
		if cf.Fields[i].Name == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// Method returns the method with the given name and descriptor; an empty
// descriptor matches the first method with the name.
func (cf *ClassFile) Method(name, descriptor string) *Method {
	for i := range cf.Methods {
		if cf.Methods[i].Name != name {
			continue
		}
		if descriptor == "" || cf.Methods[i].Descriptor == descriptor {
			return &cf.Methods[i]
		}
	}
	return nil
}

// Attribute returns the named class-level attribute record, or nil.
func (cf *ClassFile) Attribute(name string) *Attribute {
	for i := range cf.Attributes {
		if cf.Attributes[i].Name == name {
			return &cf.Attributes[i]
		}
	}
	return nil
}

// String renders the whole class for inspection: header, constant pool dump,
// flags, interfaces, fields and methods. The format carries no compatibility
// guarantee.
func (cf *ClassFile) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Class %s (extends %s), version: %s (%d.%d)\n",
		cf.Name, cf.Superclass, cf.Version, cf.MajorVersion, cf.MinorVersion)
	sb.WriteString(cf.Pool.String())
	fmt.Fprintf(&sb, "flags: %s\n", cf.Flags)
	fmt.Fprintf(&sb, "interfaces: %v\n", cf.Interfaces)
	sb.WriteString("fields:\n")
	for i := range cf.Fields {
		fmt.Fprintf(&sb, "  - %s\n", cf.Fields[i].String())
	}
	sb.WriteString("methods:\n")
	for i := range cf.Methods {
		fmt.Fprintf(&sb, "  - %s\n", cf.Methods[i].String())
	}
	return sb.String()
}
