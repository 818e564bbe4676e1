package classfile

import (
	"fmt"
	"os"
)

// Parse decodes one class file from data. It either returns a fully resolved
// ClassFile or the error of the first step that failed; there is no partial
// result. Parse does not retain data past the call except through opaque
// attribute payloads, which alias it.
func Parse(data []byte) (*ClassFile, error) {
	buf := NewBuffer(data)

	magic, err := buf.ReadU32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, invalidClassData("invalid magic number: 0x%08X", magic)
	}

	cf := &ClassFile{}
	if cf.MinorVersion, err = buf.ReadU16(); err != nil {
		return nil, err
	}
	if cf.MajorVersion, err = buf.ReadU16(); err != nil {
		return nil, err
	}
	if cf.Version, err = VersionFrom(cf.MajorVersion, cf.MinorVersion); err != nil {
		return nil, err
	}

	if cf.Pool, err = readConstantPool(buf); err != nil {
		return nil, err
	}

	flags, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	cf.Flags = ClassAccessFlags(flags)

	thisClass, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	if cf.Name, err = cf.Pool.classNameAt(thisClass); err != nil {
		return nil, err
	}

	superClass, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	// Only java/lang/Object has no superclass; its index is zero.
	if superClass != 0 {
		if cf.Superclass, err = cf.Pool.classNameAt(superClass); err != nil {
			return nil, err
		}
	}

	interfaceCount, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	cf.Interfaces = make([]string, 0, interfaceCount)
	for i := uint16(0); i < interfaceCount; i++ {
		index, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		name, err := cf.Pool.classNameAt(index)
		if err != nil {
			return nil, err
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}

	fieldCount, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	cf.Fields = make([]Field, 0, fieldCount)
	for i := uint16(0); i < fieldCount; i++ {
		field, err := readField(buf, cf.Pool)
		if err != nil {
			return nil, err
		}
		cf.Fields = append(cf.Fields, *field)
	}

	methodCount, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	cf.Methods = make([]Method, 0, methodCount)
	for i := uint16(0); i < methodCount; i++ {
		method, err := readMethod(buf, cf.Pool)
		if err != nil {
			return nil, err
		}
		cf.Methods = append(cf.Methods, *method)
	}

	if cf.Attributes, err = readAttributes(buf, cf.Pool); err != nil {
		return nil, err
	}
	for i := range cf.Attributes {
		if cf.Attributes[i].Name == "SourceFile" {
			if cf.SourceFile, err = decodeSourceFile(cf.Attributes[i].Data, cf.Pool); err != nil {
				return nil, err
			}
		}
	}

	if buf.HasMoreData() {
		return nil, invalidClassData("trailing bytes after class attributes")
	}
	return cf, nil
}

// ParseFile reads path into memory and parses it. File loading belongs to
// the caller's layer; this wrapper only exists so CLI-style callers get one
// unified error out of open/read/parse.
func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading class file: %w", err)
	}
	return Parse(data)
}

func readConstantPool(buf *Buffer) (*ConstantPool, error) {
	count, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, invalidClassData("constant pool count is zero")
	}
	// count is one more than the number of physical slots; Long and Double
	// consume two of them.
	slots := int(count) - 1
	cp := &ConstantPool{}
	for cp.Size() < slots {
		entry, err := readEntry(buf)
		if err != nil {
			return nil, err
		}
		cp.Add(entry)
	}
	if cp.Size() != slots {
		return nil, invalidClassData("wide constant overflows pool of %d slots", slots)
	}
	return cp, nil
}

func readEntry(buf *Buffer) (Entry, error) {
	tag, err := buf.ReadU8()
	if err != nil {
		return nil, err
	}
	switch ConstantTag(tag) {
	case TagUtf8:
		length, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		value, err := buf.ReadUTF8(int(length))
		if err != nil {
			return nil, err
		}
		return &Utf8Entry{Value: value}, nil
	case TagInteger:
		value, err := buf.ReadI32()
		if err != nil {
			return nil, err
		}
		return &IntegerEntry{Value: value}, nil
	case TagFloat:
		value, err := buf.ReadF32()
		if err != nil {
			return nil, err
		}
		return &FloatEntry{Value: value}, nil
	case TagLong:
		value, err := buf.ReadI64()
		if err != nil {
			return nil, err
		}
		return &LongEntry{Value: value}, nil
	case TagDouble:
		value, err := buf.ReadF64()
		if err != nil {
			return nil, err
		}
		return &DoubleEntry{Value: value}, nil
	case TagClass:
		nameIndex, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &ClassRefEntry{NameIndex: nameIndex}, nil
	case TagString:
		stringIndex, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &StringRefEntry{StringIndex: stringIndex}, nil
	case TagFieldref:
		classIndex, nameAndTypeIndex, err := readIndexPair(buf)
		if err != nil {
			return nil, err
		}
		return &FieldRefEntry{ClassIndex: classIndex, NameAndTypeIndex: nameAndTypeIndex}, nil
	case TagMethodref:
		classIndex, nameAndTypeIndex, err := readIndexPair(buf)
		if err != nil {
			return nil, err
		}
		return &MethodRefEntry{ClassIndex: classIndex, NameAndTypeIndex: nameAndTypeIndex}, nil
	case TagInterfaceMethodref:
		classIndex, nameAndTypeIndex, err := readIndexPair(buf)
		if err != nil {
			return nil, err
		}
		return &InterfaceMethodRefEntry{ClassIndex: classIndex, NameAndTypeIndex: nameAndTypeIndex}, nil
	case TagNameAndType:
		nameIndex, descriptorIndex, err := readIndexPair(buf)
		if err != nil {
			return nil, err
		}
		return &NameAndTypeEntry{NameIndex: nameIndex, DescriptorIndex: descriptorIndex}, nil
	case TagMethodHandle:
		kind, err := buf.ReadU8()
		if err != nil {
			return nil, err
		}
		referenceIndex, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &MethodHandleEntry{Kind: MethodHandleKind(kind), ReferenceIndex: referenceIndex}, nil
	case TagMethodType:
		descriptorIndex, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &MethodTypeEntry{DescriptorIndex: descriptorIndex}, nil
	case TagInvokeDynamic:
		bootstrapIndex, nameAndTypeIndex, err := readIndexPair(buf)
		if err != nil {
			return nil, err
		}
		return &InvokeDynamicEntry{BootstrapMethodAttrIndex: bootstrapIndex, NameAndTypeIndex: nameAndTypeIndex}, nil
	default:
		return nil, invalidClassData("unknown constant pool tag: %d", tag)
	}
}

func readIndexPair(buf *Buffer) (uint16, uint16, error) {
	first, err := buf.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	second, err := buf.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func readField(buf *Buffer, cp *ConstantPool) (*Field, error) {
	flags, name, descriptor, attributes, err := readMember(buf, cp)
	if err != nil {
		return nil, err
	}
	field := &Field{
		Flags:      FieldAccessFlags(flags),
		Name:       name,
		Descriptor: descriptor,
		Attributes: attributes,
	}
	for i := range attributes {
		if attributes[i].Name == "ConstantValue" {
			if field.ConstantValue, err = decodeConstantValue(attributes[i].Data, descriptor, cp); err != nil {
				return nil, err
			}
		}
	}
	return field, nil
}

func readMethod(buf *Buffer, cp *ConstantPool) (*Method, error) {
	flags, name, descriptor, attributes, err := readMember(buf, cp)
	if err != nil {
		return nil, err
	}
	method := &Method{
		Flags:      MethodAccessFlags(flags),
		Name:       name,
		Descriptor: descriptor,
		Attributes: attributes,
	}
	for i := range attributes {
		switch attributes[i].Name {
		case "Code":
			if method.Code, err = decodeCode(attributes[i].Data, cp); err != nil {
				return nil, err
			}
		case "Exceptions":
			if method.Exceptions, err = decodeExceptions(attributes[i].Data, cp); err != nil {
				return nil, err
			}
		}
	}
	return method, nil
}

// readMember reads the shared field/method record shape: flags, name,
// descriptor, attributes. Name and descriptor are resolved eagerly.
func readMember(buf *Buffer, cp *ConstantPool) (uint16, string, string, []Attribute, error) {
	flags, err := buf.ReadU16()
	if err != nil {
		return 0, "", "", nil, err
	}
	nameIndex, err := buf.ReadU16()
	if err != nil {
		return 0, "", "", nil, err
	}
	name, err := cp.utf8At(nameIndex)
	if err != nil {
		return 0, "", "", nil, err
	}
	descriptorIndex, err := buf.ReadU16()
	if err != nil {
		return 0, "", "", nil, err
	}
	descriptor, err := cp.utf8At(descriptorIndex)
	if err != nil {
		return 0, "", "", nil, err
	}
	attributes, err := readAttributes(buf, cp)
	if err != nil {
		return 0, "", "", nil, err
	}
	return flags, name, descriptor, attributes, nil
}
