package classfile

import (
	"encoding/binary"
	"fmt"
)

// Attribute is a generic attribute record: its name already resolved through
// the constant pool, its payload kept opaque. Attributes the decoder
// understands (ConstantValue, SourceFile, Exceptions, Code) are additionally
// decoded into typed form by the parser, but the raw record is always
// retained so the full attribute list stays visible to callers.
type Attribute struct {
	Name string
	Data []byte
}

// readAttributes reads count-prefixed attribute records. Each payload is
// consumed in full regardless of whether the attribute is understood, so the
// buffer stays positioned at the next sibling record.
func readAttributes(buf *Buffer, cp *ConstantPool) ([]Attribute, error) {
	count, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	attributes := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIndex, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		name, err := cp.utf8At(nameIndex)
		if err != nil {
			return nil, err
		}
		length, err := buf.ReadU32()
		if err != nil {
			return nil, err
		}
		data, err := buf.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, Attribute{Name: name, Data: data})
	}
	return attributes, nil
}

// ConstantValue is the typed literal a final field is initialized to.
// The set of implementations mirrors the entry kinds a ConstantValue
// attribute may reference.
type ConstantValue interface {
	constantValue()
}

type IntValue struct{ Value int32 }

type FloatValue struct{ Value float32 }

type LongValue struct{ Value int64 }

type DoubleValue struct{ Value float64 }

type StringValue struct{ Value string }

func (IntValue) constantValue()    {}
func (FloatValue) constantValue()  {}
func (LongValue) constantValue()   {}
func (DoubleValue) constantValue() {}
func (StringValue) constantValue() {}

func (v IntValue) String() string    { return fmt.Sprintf("%v", v.Value) }
func (v FloatValue) String() string  { return fmt.Sprintf("%v", v.Value) }
func (v LongValue) String() string   { return fmt.Sprintf("%v", v.Value) }
func (v DoubleValue) String() string { return fmt.Sprintf("%v", v.Value) }
func (v StringValue) String() string { return fmt.Sprintf("%q", v.Value) }

// decodeConstantValue interprets a ConstantValue attribute payload for a
// field with the given descriptor. The referenced pool entry must match the
// field's type category.
func decodeConstantValue(data []byte, descriptor string, cp *ConstantPool) (ConstantValue, error) {
	if len(data) != 2 {
		return nil, invalidClassData("ConstantValue attribute has length %d, expected 2", len(data))
	}
	index := binary.BigEndian.Uint16(data)
	entry, err := cp.Get(index)
	if err != nil {
		return nil, err
	}
	switch descriptor {
	case "B", "C", "I", "S", "Z":
		if e, ok := entry.(*IntegerEntry); ok {
			return IntValue{Value: e.Value}, nil
		}
	case "F":
		if e, ok := entry.(*FloatEntry); ok {
			return FloatValue{Value: e.Value}, nil
		}
	case "J":
		if e, ok := entry.(*LongEntry); ok {
			return LongValue{Value: e.Value}, nil
		}
	case "D":
		if e, ok := entry.(*DoubleEntry); ok {
			return DoubleValue{Value: e.Value}, nil
		}
	case "Ljava/lang/String;":
		if e, ok := entry.(*StringRefEntry); ok {
			value, err := cp.utf8At(e.StringIndex)
			if err != nil {
				return nil, err
			}
			return StringValue{Value: value}, nil
		}
	default:
		return nil, invalidClassData("ConstantValue attribute on field of type %q", descriptor)
	}
	return nil, invalidClassData("ConstantValue entry %d does not match field type %q", index, descriptor)
}

// decodeSourceFile interprets a SourceFile attribute payload.
func decodeSourceFile(data []byte, cp *ConstantPool) (string, error) {
	if len(data) != 2 {
		return "", invalidClassData("SourceFile attribute has length %d, expected 2", len(data))
	}
	return cp.utf8At(binary.BigEndian.Uint16(data))
}

// decodeExceptions interprets an Exceptions attribute payload into the
// declared exception class names, in declaration order.
func decodeExceptions(data []byte, cp *ConstantPool) ([]string, error) {
	buf := NewBuffer(data)
	count, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	if len(data) != 2+2*int(count) {
		return nil, invalidClassData("Exceptions attribute has length %d, expected %d", len(data), 2+2*int(count))
	}
	names := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		index, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		name, err := cp.classNameAt(index)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// CodeAttribute is the structural decode of a method's Code attribute. The
// bytecode itself stays opaque; exception handler catch types are resolved
// to class names, empty string meaning catch-all.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionHandler
	Attributes     []Attribute
}

type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType string
}

// decodeCode interprets a Code attribute payload. The declared payload
// length must be consumed exactly.
func decodeCode(data []byte, cp *ConstantPool) (*CodeAttribute, error) {
	buf := NewBuffer(data)
	code := &CodeAttribute{}
	var err error
	if code.MaxStack, err = buf.ReadU16(); err != nil {
		return nil, err
	}
	if code.MaxLocals, err = buf.ReadU16(); err != nil {
		return nil, err
	}
	codeLength, err := buf.ReadU32()
	if err != nil {
		return nil, err
	}
	if code.Code, err = buf.ReadBytes(int(codeLength)); err != nil {
		return nil, err
	}
	handlerCount, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	code.ExceptionTable = make([]ExceptionHandler, 0, handlerCount)
	for i := uint16(0); i < handlerCount; i++ {
		var handler ExceptionHandler
		if handler.StartPC, err = buf.ReadU16(); err != nil {
			return nil, err
		}
		if handler.EndPC, err = buf.ReadU16(); err != nil {
			return nil, err
		}
		if handler.HandlerPC, err = buf.ReadU16(); err != nil {
			return nil, err
		}
		catchType, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		if catchType != 0 {
			if handler.CatchType, err = cp.classNameAt(catchType); err != nil {
				return nil, err
			}
		}
		code.ExceptionTable = append(code.ExceptionTable, handler)
	}
	if code.Attributes, err = readAttributes(buf, cp); err != nil {
		return nil, err
	}
	if buf.HasMoreData() {
		return nil, invalidClassData("Code attribute has trailing bytes")
	}
	return code, nil
}
