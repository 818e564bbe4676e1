package classfile

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func buildTestPool() *ConstantPool {
	cp := &ConstantPool{}
	cp.Add(&Utf8Entry{Value: "hey"})                                        // 1
	cp.Add(&IntegerEntry{Value: 1})                                         // 2
	cp.Add(&FloatEntry{Value: 2.1})                                         // 3
	cp.Add(&LongEntry{Value: 123})                                          // 4, tombstone at 5
	cp.Add(&DoubleEntry{Value: 3.56})                                       // 6, tombstone at 7
	cp.Add(&ClassRefEntry{NameIndex: 1})                                    // 8
	cp.Add(&StringRefEntry{StringIndex: 1})                                 // 9
	cp.Add(&Utf8Entry{Value: "joe"})                                        // 10
	cp.Add(&FieldRefEntry{ClassIndex: 1, NameAndTypeIndex: 10})             // 11
	cp.Add(&MethodRefEntry{ClassIndex: 1, NameAndTypeIndex: 10})            // 12
	cp.Add(&InterfaceMethodRefEntry{ClassIndex: 1, NameAndTypeIndex: 10})   // 13
	cp.Add(&NameAndTypeEntry{NameIndex: 1, DescriptorIndex: 10})            // 14
	return cp
}

func TestConstantPoolIndexing(t *testing.T) {
	cp := buildTestPool()

	if cp.Size() != 14 {
		t.Fatalf("Size() = %d, want 14", cp.Size())
	}

	t.Run("wide entries shift later indices", func(t *testing.T) {
		wantEntries := map[uint16]Entry{
			1:  &Utf8Entry{Value: "hey"},
			2:  &IntegerEntry{Value: 1},
			3:  &FloatEntry{Value: 2.1},
			4:  &LongEntry{Value: 123},
			6:  &DoubleEntry{Value: 3.56},
			8:  &ClassRefEntry{NameIndex: 1},
			9:  &StringRefEntry{StringIndex: 1},
			10: &Utf8Entry{Value: "joe"},
			11: &FieldRefEntry{ClassIndex: 1, NameAndTypeIndex: 10},
			12: &MethodRefEntry{ClassIndex: 1, NameAndTypeIndex: 10},
			13: &InterfaceMethodRefEntry{ClassIndex: 1, NameAndTypeIndex: 10},
			14: &NameAndTypeEntry{NameIndex: 1, DescriptorIndex: 10},
		}
		for index, want := range wantEntries {
			got, err := cp.Get(index)
			if err != nil {
				t.Errorf("Get(%d) failed: %v", index, err)
				continue
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Get(%d) = %#v, want %#v", index, got, want)
			}
		}
	})

	t.Run("invalid indices", func(t *testing.T) {
		for _, index := range []uint16{0, 5, 7, 15, 99} {
			_, err := cp.Get(index)
			var invalid *InvalidConstantPoolIndexError
			if !errors.As(err, &invalid) {
				t.Errorf("Get(%d) error = %v, want InvalidConstantPoolIndexError", index, err)
				continue
			}
			if invalid.Index != index {
				t.Errorf("Get(%d) reported index %d", index, invalid.Index)
			}
		}
	})
}

func TestConstantPoolTextOf(t *testing.T) {
	cp := buildTestPool()

	want := map[uint16]string{
		1:  "hey",
		2:  "1",
		3:  "2.1",
		4:  "123",
		6:  "3.56",
		8:  "hey",
		9:  "hey",
		10: "joe",
		11: "hey.joe",
		12: "hey.joe",
		13: "hey.joe",
		14: "hey: joe",
	}
	for index, text := range want {
		got, err := cp.TextOf(index)
		if err != nil {
			t.Errorf("TextOf(%d) failed: %v", index, err)
			continue
		}
		if got != text {
			t.Errorf("TextOf(%d) = %q, want %q", index, got, text)
		}
	}

	for _, index := range []uint16{0, 5, 7, 15} {
		if _, err := cp.TextOf(index); err == nil {
			t.Errorf("TextOf(%d) succeeded, want error", index)
		}
	}
}

func TestConstantPoolTextOfJava7Entries(t *testing.T) {
	cp := &ConstantPool{}
	cp.Add(&Utf8Entry{Value: "run"})                                        // 1
	cp.Add(&Utf8Entry{Value: "()V"})                                        // 2
	cp.Add(&NameAndTypeEntry{NameIndex: 1, DescriptorIndex: 2})             // 3
	cp.Add(&Utf8Entry{Value: "pkg/Task"})                                   // 4
	cp.Add(&ClassRefEntry{NameIndex: 4})                                    // 5
	cp.Add(&MethodRefEntry{ClassIndex: 5, NameAndTypeIndex: 3})             // 6
	cp.Add(&MethodHandleEntry{Kind: RefInvokeVirtual, ReferenceIndex: 6})   // 7
	cp.Add(&MethodTypeEntry{DescriptorIndex: 2})                            // 8
	cp.Add(&InvokeDynamicEntry{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 3}) // 9

	want := map[uint16]string{
		7: "pkg/Task.run: ()V",
		8: "()V",
		9: "#0.run: ()V",
	}
	for index, text := range want {
		got, err := cp.TextOf(index)
		if err != nil {
			t.Errorf("TextOf(%d) failed: %v", index, err)
			continue
		}
		if got != text {
			t.Errorf("TextOf(%d) = %q, want %q", index, got, text)
		}
	}
}

func TestConstantPoolDump(t *testing.T) {
	cp := buildTestPool()
	dump := cp.String()

	wantLines := []string{
		"Constant pool: (size: 14)",
		`    1, String: "hey"`,
		"    2, Integer: 1",
		"    4, Long: 123",
		"    5, (continuation of previous wide constant)",
		"    7, (continuation of previous wide constant)",
		`    8, ClassReference: 1 => (String: "hey")`,
		`    14, NameAndTypeDescriptor: 1, 10 => (String: "hey"), (String: "joe")`,
	}
	for _, line := range wantLines {
		if !strings.Contains(dump, line) {
			t.Errorf("dump missing line %q\ndump:\n%s", line, dump)
		}
	}
	if got := strings.Count(dump, "\n"); got != 15 {
		t.Errorf("dump has %d lines, want 15 (header plus one per slot)", got)
	}
}

func TestConstantPoolKindChecks(t *testing.T) {
	cp := buildTestPool()

	t.Run("utf8At rejects non-utf8 entries", func(t *testing.T) {
		if _, err := cp.utf8At(2); err == nil {
			t.Error("utf8At(2) on an Integer succeeded, want error")
		}
		if got, err := cp.utf8At(1); err != nil || got != "hey" {
			t.Errorf("utf8At(1) = %q, %v", got, err)
		}
	})

	t.Run("classNameAt rejects non-class entries", func(t *testing.T) {
		if _, err := cp.classNameAt(1); err == nil {
			t.Error("classNameAt(1) on a Utf8 succeeded, want error")
		}
		if got, err := cp.classNameAt(8); err != nil || got != "hey" {
			t.Errorf("classNameAt(8) = %q, %v", got, err)
		}
	})
}
