package classfile

import "strings"

var primitiveNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// FieldType is a parsed field descriptor: either a primitive, a class
// reference, or an array of one of those.
type FieldType struct {
	Primitive  string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) IsArray() bool     { return ft.ArrayDepth > 0 }
func (ft *FieldType) IsPrimitive() bool { return ft.Primitive != "" && ft.ArrayDepth == 0 }

// String renders the type as Java source would spell it.
func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.Primitive != "" {
		sb.WriteString(ft.Primitive)
	} else {
		sb.WriteString(strings.ReplaceAll(ft.ClassName, "/", "."))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// MethodDescriptor is a parsed method descriptor. A nil ReturnType means void.
type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(md.Parameters[i].String())
	}
	sb.WriteString(") ")
	if md.ReturnType == nil {
		sb.WriteString("void")
	} else {
		sb.WriteString(md.ReturnType.String())
	}
	return sb.String()
}

// ParseFieldDescriptor parses a single field descriptor such as "I",
// "Ljava/lang/String;" or "[[D".
func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, rest, err := takeFieldType(desc)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, invalidClassData("trailing characters in field descriptor %q", desc)
	}
	return ft, nil
}

// ParseMethodDescriptor parses a method descriptor such as
// "(ILjava/lang/String;)V".
func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, invalidClassData("malformed method descriptor %q", desc)
	}
	rest := desc[1:]
	md := &MethodDescriptor{}
	for rest != "" && rest[0] != ')' {
		ft, remaining, err := takeFieldType(rest)
		if err != nil {
			return nil, invalidClassData("malformed method descriptor %q", desc)
		}
		md.Parameters = append(md.Parameters, *ft)
		rest = remaining
	}
	if rest == "" {
		return nil, invalidClassData("malformed method descriptor %q", desc)
	}
	rest = rest[1:]
	if rest == "V" {
		return md, nil
	}
	ret, remaining, err := takeFieldType(rest)
	if err != nil || remaining != "" {
		return nil, invalidClassData("malformed method descriptor %q", desc)
	}
	md.ReturnType = ret
	return md, nil
}

func takeFieldType(desc string) (*FieldType, string, error) {
	ft := &FieldType{}
	i := 0
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return nil, "", invalidClassData("malformed field descriptor %q", desc)
	}
	switch c := desc[i]; c {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		ft.Primitive = primitiveNames[c]
		return ft, desc[i+1:], nil
	case 'L':
		end := strings.IndexByte(desc[i:], ';')
		if end < 0 || end == 1 {
			return nil, "", invalidClassData("malformed field descriptor %q", desc)
		}
		ft.ClassName = desc[i+1 : i+end]
		return ft, desc[i+end+1:], nil
	default:
		return nil, "", invalidClassData("malformed field descriptor %q", desc)
	}
}
