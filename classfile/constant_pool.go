package classfile

import (
	"fmt"
	"strings"
)

// Entry is one logical constant pool entry. The set of implementations is
// fixed by the class file format; consumers switch exhaustively on the
// concrete type or on Tag().
type Entry interface {
	Tag() ConstantTag
}

type Utf8Entry struct {
	Value string
}

func (e *Utf8Entry) Tag() ConstantTag { return TagUtf8 }

type IntegerEntry struct {
	Value int32
}

func (e *IntegerEntry) Tag() ConstantTag { return TagInteger }

type FloatEntry struct {
	Value float32
}

func (e *FloatEntry) Tag() ConstantTag { return TagFloat }

type LongEntry struct {
	Value int64
}

func (e *LongEntry) Tag() ConstantTag { return TagLong }

type DoubleEntry struct {
	Value float64
}

func (e *DoubleEntry) Tag() ConstantTag { return TagDouble }

type ClassRefEntry struct {
	NameIndex uint16
}

func (e *ClassRefEntry) Tag() ConstantTag { return TagClass }

type StringRefEntry struct {
	StringIndex uint16
}

func (e *StringRefEntry) Tag() ConstantTag { return TagString }

type FieldRefEntry struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (e *FieldRefEntry) Tag() ConstantTag { return TagFieldref }

type MethodRefEntry struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (e *MethodRefEntry) Tag() ConstantTag { return TagMethodref }

type InterfaceMethodRefEntry struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (e *InterfaceMethodRefEntry) Tag() ConstantTag { return TagInterfaceMethodref }

type NameAndTypeEntry struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (e *NameAndTypeEntry) Tag() ConstantTag { return TagNameAndType }

type MethodHandleEntry struct {
	Kind           MethodHandleKind
	ReferenceIndex uint16
}

func (e *MethodHandleEntry) Tag() ConstantTag { return TagMethodHandle }

type MethodTypeEntry struct {
	DescriptorIndex uint16
}

func (e *MethodTypeEntry) Tag() ConstantTag { return TagMethodType }

type InvokeDynamicEntry struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (e *InvokeDynamicEntry) Tag() ConstantTag { return TagInvokeDynamic }

// ConstantPool is the class file's 1-based table of constants. Long and
// Double entries occupy two physical slots; the second slot is a tombstone
// that no valid index may point at.
type ConstantPool struct {
	entries []Entry
}

// Add appends one logical entry, plus a tombstone slot after a Long or
// Double so that later entries land at the indices the format assigns them.
func (cp *ConstantPool) Add(entry Entry) {
	cp.entries = append(cp.entries, entry)
	switch entry.(type) {
	case *LongEntry, *DoubleEntry:
		cp.entries = append(cp.entries, nil)
	}
}

// Size returns the number of physical slots, tombstones included.
func (cp *ConstantPool) Size() int {
	return len(cp.entries)
}

// Get returns the entry at the given 1-based index. Index 0, indices past
// the end, and tombstone slots all fail with InvalidConstantPoolIndexError.
func (cp *ConstantPool) Get(index uint16) (Entry, error) {
	if index == 0 || int(index) > len(cp.entries) {
		return nil, &InvalidConstantPoolIndexError{Index: index}
	}
	entry := cp.entries[index-1]
	if entry == nil {
		return nil, &InvalidConstantPoolIndexError{Index: index}
	}
	return entry, nil
}

// utf8At returns the Utf8 entry at index. Pointing a name or descriptor
// reference at any other entry kind is as invalid as pointing it out of
// bounds.
func (cp *ConstantPool) utf8At(index uint16) (string, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	utf8, ok := entry.(*Utf8Entry)
	if !ok {
		return "", &InvalidConstantPoolIndexError{Index: index}
	}
	return utf8.Value, nil
}

// classNameAt resolves a ClassReference entry at index to the class name it
// points at.
func (cp *ConstantPool) classNameAt(index uint16) (string, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	class, ok := entry.(*ClassRefEntry)
	if !ok {
		return "", &InvalidConstantPoolIndexError{Index: index}
	}
	return cp.utf8At(class.NameIndex)
}

// TextOf renders the entry at index as resolved text: leaves render as their
// literal value, references chase their indices. A field, method or
// interface-method reference renders as "owner.name: descriptor", a
// name-and-type as "name: descriptor".
func (cp *ConstantPool) TextOf(index uint16) (string, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	switch e := entry.(type) {
	case *Utf8Entry:
		return e.Value, nil
	case *IntegerEntry:
		return fmt.Sprintf("%v", e.Value), nil
	case *FloatEntry:
		return fmt.Sprintf("%v", e.Value), nil
	case *LongEntry:
		return fmt.Sprintf("%v", e.Value), nil
	case *DoubleEntry:
		return fmt.Sprintf("%v", e.Value), nil
	case *ClassRefEntry:
		return cp.TextOf(e.NameIndex)
	case *StringRefEntry:
		return cp.TextOf(e.StringIndex)
	case *FieldRefEntry:
		return cp.refText(e.ClassIndex, e.NameAndTypeIndex)
	case *MethodRefEntry:
		return cp.refText(e.ClassIndex, e.NameAndTypeIndex)
	case *InterfaceMethodRefEntry:
		return cp.refText(e.ClassIndex, e.NameAndTypeIndex)
	case *NameAndTypeEntry:
		name, err := cp.TextOf(e.NameIndex)
		if err != nil {
			return "", err
		}
		descriptor, err := cp.TextOf(e.DescriptorIndex)
		if err != nil {
			return "", err
		}
		return name + ": " + descriptor, nil
	case *MethodHandleEntry:
		return cp.TextOf(e.ReferenceIndex)
	case *MethodTypeEntry:
		return cp.TextOf(e.DescriptorIndex)
	case *InvokeDynamicEntry:
		nat, err := cp.TextOf(e.NameAndTypeIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#%d.%s", e.BootstrapMethodAttrIndex, nat), nil
	default:
		return "", &InvalidConstantPoolIndexError{Index: index}
	}
}

func (cp *ConstantPool) refText(classIndex, nameAndTypeIndex uint16) (string, error) {
	owner, err := cp.TextOf(classIndex)
	if err != nil {
		return "", err
	}
	nat, err := cp.TextOf(nameAndTypeIndex)
	if err != nil {
		return "", err
	}
	return owner + "." + nat, nil
}

// EntryText renders one slot for the diagnostic dump, kind first, nested
// references resolved recursively.
func (cp *ConstantPool) EntryText(index uint16) (string, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return "", err
	}
	switch e := entry.(type) {
	case *Utf8Entry:
		return fmt.Sprintf("String: %q", e.Value), nil
	case *IntegerEntry:
		return fmt.Sprintf("Integer: %v", e.Value), nil
	case *FloatEntry:
		return fmt.Sprintf("Float: %v", e.Value), nil
	case *LongEntry:
		return fmt.Sprintf("Long: %v", e.Value), nil
	case *DoubleEntry:
		return fmt.Sprintf("Double: %v", e.Value), nil
	case *ClassRefEntry:
		return cp.linkText("ClassReference", e.NameIndex)
	case *StringRefEntry:
		return cp.linkText("StringReference", e.StringIndex)
	case *FieldRefEntry:
		return cp.pairText("FieldReference", e.ClassIndex, e.NameAndTypeIndex)
	case *MethodRefEntry:
		return cp.pairText("MethodReference", e.ClassIndex, e.NameAndTypeIndex)
	case *InterfaceMethodRefEntry:
		return cp.pairText("InterfaceMethodReference", e.ClassIndex, e.NameAndTypeIndex)
	case *NameAndTypeEntry:
		return cp.pairText("NameAndTypeDescriptor", e.NameIndex, e.DescriptorIndex)
	case *MethodHandleEntry:
		inner, err := cp.EntryText(e.ReferenceIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MethodHandle: kind %d, %d => (%s)", e.Kind, e.ReferenceIndex, inner), nil
	case *MethodTypeEntry:
		return cp.linkText("MethodType", e.DescriptorIndex)
	case *InvokeDynamicEntry:
		inner, err := cp.EntryText(e.NameAndTypeIndex)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("InvokeDynamic: #%d, %d => (%s)", e.BootstrapMethodAttrIndex, e.NameAndTypeIndex, inner), nil
	default:
		return "", &InvalidConstantPoolIndexError{Index: index}
	}
}

func (cp *ConstantPool) linkText(kind string, index uint16) (string, error) {
	inner, err := cp.EntryText(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %d => (%s)", kind, index, inner), nil
}

func (cp *ConstantPool) pairText(kind string, first, second uint16) (string, error) {
	a, err := cp.EntryText(first)
	if err != nil {
		return "", err
	}
	b, err := cp.EntryText(second)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %d, %d => (%s), (%s)", kind, first, second, a, b), nil
}

// String dumps every physical slot in index order. Tombstone slots are
// rendered as continuations so no index is skipped; unresolvable references
// render as their error instead of aborting the dump.
func (cp *ConstantPool) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Constant pool: (size: %d)\n", len(cp.entries))
	for i := range cp.entries {
		index := uint16(i + 1)
		if cp.entries[i] == nil {
			fmt.Fprintf(&sb, "    %d, (continuation of previous wide constant)\n", index)
			continue
		}
		text, err := cp.EntryText(index)
		if err != nil {
			text = "<" + err.Error() + ">"
		}
		fmt.Fprintf(&sb, "    %d, %s\n", index, text)
	}
	return sb.String()
}
