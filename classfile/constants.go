package classfile

import "strings"

// Magic is the four-byte signature every class file starts with.
const Magic uint32 = 0xCAFEBABE

// ConstantTag identifies the kind of a constant pool entry.
type ConstantTag uint8

const (
	TagUtf8               ConstantTag = 1
	TagInteger            ConstantTag = 3
	TagFloat              ConstantTag = 4
	TagLong               ConstantTag = 5
	TagDouble             ConstantTag = 6
	TagClass              ConstantTag = 7
	TagString             ConstantTag = 8
	TagFieldref           ConstantTag = 9
	TagMethodref          ConstantTag = 10
	TagInterfaceMethodref ConstantTag = 11
	TagNameAndType        ConstantTag = 12
	TagMethodHandle       ConstantTag = 15
	TagMethodType         ConstantTag = 16
	TagInvokeDynamic      ConstantTag = 18
)

// MethodHandleKind is the reference_kind of a MethodHandle entry.
type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

// The three access-flag domains share bit values but not meanings, so each
// gets its own type. Unknown bits are preserved.

type ClassAccessFlags uint16

const (
	ClassAccPublic     ClassAccessFlags = 0x0001
	ClassAccFinal      ClassAccessFlags = 0x0010
	ClassAccSuper      ClassAccessFlags = 0x0020
	ClassAccInterface  ClassAccessFlags = 0x0200
	ClassAccAbstract   ClassAccessFlags = 0x0400
	ClassAccSynthetic  ClassAccessFlags = 0x1000
	ClassAccAnnotation ClassAccessFlags = 0x2000
	ClassAccEnum       ClassAccessFlags = 0x4000
)

func (f ClassAccessFlags) IsPublic() bool     { return f&ClassAccPublic != 0 }
func (f ClassAccessFlags) IsFinal() bool      { return f&ClassAccFinal != 0 }
func (f ClassAccessFlags) IsSuper() bool      { return f&ClassAccSuper != 0 }
func (f ClassAccessFlags) IsInterface() bool  { return f&ClassAccInterface != 0 }
func (f ClassAccessFlags) IsAbstract() bool   { return f&ClassAccAbstract != 0 }
func (f ClassAccessFlags) IsSynthetic() bool  { return f&ClassAccSynthetic != 0 }
func (f ClassAccessFlags) IsAnnotation() bool { return f&ClassAccAnnotation != 0 }
func (f ClassAccessFlags) IsEnum() bool       { return f&ClassAccEnum != 0 }

func (f ClassAccessFlags) String() string {
	return flagString(uint16(f), []flagName{
		{uint16(ClassAccPublic), "public"},
		{uint16(ClassAccFinal), "final"},
		{uint16(ClassAccSuper), "super"},
		{uint16(ClassAccInterface), "interface"},
		{uint16(ClassAccAbstract), "abstract"},
		{uint16(ClassAccSynthetic), "synthetic"},
		{uint16(ClassAccAnnotation), "annotation"},
		{uint16(ClassAccEnum), "enum"},
	})
}

type FieldAccessFlags uint16

const (
	FieldAccPublic    FieldAccessFlags = 0x0001
	FieldAccPrivate   FieldAccessFlags = 0x0002
	FieldAccProtected FieldAccessFlags = 0x0004
	FieldAccStatic    FieldAccessFlags = 0x0008
	FieldAccFinal     FieldAccessFlags = 0x0010
	FieldAccVolatile  FieldAccessFlags = 0x0040
	FieldAccTransient FieldAccessFlags = 0x0080
	FieldAccSynthetic FieldAccessFlags = 0x1000
	FieldAccEnum      FieldAccessFlags = 0x4000
)

func (f FieldAccessFlags) IsPublic() bool    { return f&FieldAccPublic != 0 }
func (f FieldAccessFlags) IsPrivate() bool   { return f&FieldAccPrivate != 0 }
func (f FieldAccessFlags) IsProtected() bool { return f&FieldAccProtected != 0 }
func (f FieldAccessFlags) IsStatic() bool    { return f&FieldAccStatic != 0 }
func (f FieldAccessFlags) IsFinal() bool     { return f&FieldAccFinal != 0 }
func (f FieldAccessFlags) IsVolatile() bool  { return f&FieldAccVolatile != 0 }
func (f FieldAccessFlags) IsTransient() bool { return f&FieldAccTransient != 0 }
func (f FieldAccessFlags) IsSynthetic() bool { return f&FieldAccSynthetic != 0 }
func (f FieldAccessFlags) IsEnum() bool      { return f&FieldAccEnum != 0 }

func (f FieldAccessFlags) String() string {
	return flagString(uint16(f), []flagName{
		{uint16(FieldAccPublic), "public"},
		{uint16(FieldAccPrivate), "private"},
		{uint16(FieldAccProtected), "protected"},
		{uint16(FieldAccStatic), "static"},
		{uint16(FieldAccFinal), "final"},
		{uint16(FieldAccVolatile), "volatile"},
		{uint16(FieldAccTransient), "transient"},
		{uint16(FieldAccSynthetic), "synthetic"},
		{uint16(FieldAccEnum), "enum"},
	})
}

type MethodAccessFlags uint16

const (
	MethodAccPublic       MethodAccessFlags = 0x0001
	MethodAccPrivate      MethodAccessFlags = 0x0002
	MethodAccProtected    MethodAccessFlags = 0x0004
	MethodAccStatic       MethodAccessFlags = 0x0008
	MethodAccFinal        MethodAccessFlags = 0x0010
	MethodAccSynchronized MethodAccessFlags = 0x0020
	MethodAccBridge       MethodAccessFlags = 0x0040
	MethodAccVarargs      MethodAccessFlags = 0x0080
	MethodAccNative       MethodAccessFlags = 0x0100
	MethodAccAbstract     MethodAccessFlags = 0x0400
	MethodAccStrict       MethodAccessFlags = 0x0800
	MethodAccSynthetic    MethodAccessFlags = 0x1000
)

func (f MethodAccessFlags) IsPublic() bool       { return f&MethodAccPublic != 0 }
func (f MethodAccessFlags) IsPrivate() bool      { return f&MethodAccPrivate != 0 }
func (f MethodAccessFlags) IsProtected() bool    { return f&MethodAccProtected != 0 }
func (f MethodAccessFlags) IsStatic() bool       { return f&MethodAccStatic != 0 }
func (f MethodAccessFlags) IsFinal() bool        { return f&MethodAccFinal != 0 }
func (f MethodAccessFlags) IsSynchronized() bool { return f&MethodAccSynchronized != 0 }
func (f MethodAccessFlags) IsBridge() bool       { return f&MethodAccBridge != 0 }
func (f MethodAccessFlags) IsVarargs() bool      { return f&MethodAccVarargs != 0 }
func (f MethodAccessFlags) IsNative() bool       { return f&MethodAccNative != 0 }
func (f MethodAccessFlags) IsAbstract() bool     { return f&MethodAccAbstract != 0 }
func (f MethodAccessFlags) IsStrict() bool       { return f&MethodAccStrict != 0 }
func (f MethodAccessFlags) IsSynthetic() bool    { return f&MethodAccSynthetic != 0 }

func (f MethodAccessFlags) String() string {
	return flagString(uint16(f), []flagName{
		{uint16(MethodAccPublic), "public"},
		{uint16(MethodAccPrivate), "private"},
		{uint16(MethodAccProtected), "protected"},
		{uint16(MethodAccStatic), "static"},
		{uint16(MethodAccFinal), "final"},
		{uint16(MethodAccSynchronized), "synchronized"},
		{uint16(MethodAccBridge), "bridge"},
		{uint16(MethodAccVarargs), "varargs"},
		{uint16(MethodAccNative), "native"},
		{uint16(MethodAccAbstract), "abstract"},
		{uint16(MethodAccStrict), "strict"},
		{uint16(MethodAccSynthetic), "synthetic"},
	})
}

type flagName struct {
	bit  uint16
	name string
}

func flagString(raw uint16, names []flagName) string {
	var parts []string
	for _, fn := range names {
		if raw&fn.bit != 0 {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, " ")
}
