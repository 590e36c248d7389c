package objcsim

import (
	"hash/fnv"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/chazu/objcbridge/objc"
)

// NSStringEncoding values understood by the simulated NSString.
const (
	encASCII       = 1
	encJapaneseEUC = 3
	encUTF8        = 4
	encISOLatin1   = 5
	encShiftJIS    = 8
	encISOLatin2   = 9
	encUnicode     = 10
	encCP1251      = 11
	encCP1252      = 12
	encCP1253      = 13
	encCP1254      = 14
	encCP1250      = 15
	encISO2022JP   = 21
	encMacOSRoman  = 30
	encUTF16BE     = 0x90000100
	encUTF16LE     = 0x94000100
	encUTF32       = 0x8c000100
	encUTF32BE     = 0x98000100
	encUTF32LE     = 0x9c000100
)

// textEncoding maps an NSStringEncoding onto an x/text codec. ASCII and
// UTF-8 are handled directly; other encodings are unsupported.
func textEncoding(enc uintptr) (encoding.Encoding, bool) {
	switch enc {
	case encJapaneseEUC:
		return japanese.EUCJP, true
	case encShiftJIS:
		return japanese.ShiftJIS, true
	case encISO2022JP:
		return japanese.ISO2022JP, true
	case encISOLatin1:
		return charmap.ISO8859_1, true
	case encISOLatin2:
		return charmap.ISO8859_2, true
	case encMacOSRoman:
		return charmap.Macintosh, true
	case encCP1250:
		return charmap.Windows1250, true
	case encCP1251:
		return charmap.Windows1251, true
	case encCP1252:
		return charmap.Windows1252, true
	case encCP1253:
		return charmap.Windows1253, true
	case encCP1254:
		return charmap.Windows1254, true
	case encUnicode:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), true
	case encUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), true
	case encUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), true
	case encUTF32:
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), true
	case encUTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), true
	case encUTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), true
	}
	return nil, false
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// decodeString converts raw bytes in enc to a Go string.
func decodeString(raw []byte, enc uintptr) (string, bool) {
	switch enc {
	case encASCII:
		return string(raw), isASCII(raw)
	case encUTF8:
		return string(raw), utf8.Valid(raw)
	}
	codec, ok := textEncoding(enc)
	if !ok {
		return "", false
	}
	out, err := codec.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// encodedLength returns the byte length of s in enc, or 0 if s cannot be
// represented in it.
func encodedLength(s string, enc uintptr) int {
	switch enc {
	case encASCII:
		if !isASCII([]byte(s)) {
			return 0
		}
		return len(s)
	case encUTF8:
		return len(s)
	}
	codec, ok := textEncoding(enc)
	if !ok {
		return 0
	}
	out, err := codec.NewEncoder().String(s)
	if err != nil {
		return 0
	}
	return len(out)
}

// stringData backs an NSString instance.
type stringData struct {
	s    string
	cstr uintptr // NUL-terminated UTF-8 in the C heap, freed on dealloc
}

// setString stores s in inst along with its C string.
func (r *Runtime) setString(inst *Instance, s string) {
	n := uintptr(len(s))
	p := r.Heap.Alloc(n + 1)
	copy(r.Heap.View(p, n+1), s)
	inst.SetData(&stringData{s: s, cstr: p})
	inst.OnDealloc(func() { r.Heap.Free(p) })
}

// notificationData backs an NSNotification instance.
type notificationData struct {
	name   objc.Handle
	object objc.Handle
}

// NewString creates a +1 NSString holding s.
func (r *Runtime) NewString(s string) objc.Handle {
	h := r.alloc(r.classHandle("NSString"))
	r.setString(r.OS.GetInstance(h), s)
	return h
}

// StringValue returns the contents of an NSString.
func (r *Runtime) StringValue(h objc.Handle) (string, bool) {
	inst := r.OS.GetInstance(h)
	if inst == nil {
		return "", false
	}
	sd, ok := inst.Data().(*stringData)
	if !ok {
		return "", false
	}
	return sd.s, true
}

func (r *Runtime) classHandle(name string) objc.Handle {
	c := r.OS.GetClass(name)
	if c == nil {
		panic("objcsim: missing built-in class " + name)
	}
	return c.Handle
}

func (r *Runtime) registerFoundation() {
	str := r.mustDefineClass("NSString", r.Root)

	initWithBytes := func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		s, ok := decodeString(r.Memory(args[0], args[1]), args[2])
		if !ok {
			// failed initializers release self and return nil
			r.release(self)
			return 0
		}
		r.setString(r.OS.GetInstance(self), s)
		return uintptr(self)
	}
	r.define(str, false, "initWithBytes:length:encoding:", "@@:r^vQQ", initWithBytes)
	r.define(str, false, "initWithBytesNoCopy:length:encoding:freeWhenDone:", "@@:^vQQc", initWithBytes)
	r.define(str, false, "init", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		r.setString(r.OS.GetInstance(self), "")
		return uintptr(self)
	})
	r.define(str, false, "UTF8String", "r*@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return r.stringData(self).cstr
	})
	r.define(str, false, "lengthOfBytesUsingEncoding:", "Q@:Q", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		return uintptr(encodedLength(r.stringData(self).s, args[0]))
	})
	r.define(str, false, "length", "Q@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(len(utf16.Encode([]rune(r.stringData(self).s))))
	})
	r.define(str, false, "isEqualToString:", "c@:@", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		other, ok := r.StringValue(objc.Handle(args[0]))
		return r.boolWord(ok && other == r.stringData(self).s)
	})
	r.define(str, false, "isEqual:", "c@:@", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		other, ok := r.StringValue(objc.Handle(args[0]))
		return r.boolWord(ok && other == r.stringData(self).s)
	})
	r.define(str, false, "hash", "Q@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		h := fnv.New64a()
		h.Write([]byte(r.stringData(self).s))
		return uintptr(h.Sum64())
	})
	// immutable: a copy is the same object with one more count
	r.define(str, false, "copyWithZone:", "@@:^{_NSZone=}", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return r.send(self, "retain")
	})

	note := r.mustDefineClass("NSNotification", r.Root)
	r.define(note, false, "initWithName:object:userInfo:", "@@:@@@", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		data := &notificationData{
			name:   objc.Handle(r.send(objc.Handle(args[0]), "copy")),
			object: objc.Handle(r.send(objc.Handle(args[1]), "retain")),
		}
		inst := r.OS.GetInstance(self)
		inst.SetData(data)
		inst.OnDealloc(func() {
			if !data.object.IsNil() {
				r.release(data.object)
			}
			if !data.name.IsNil() {
				r.release(data.name)
			}
		})
		return uintptr(self)
	})
	r.define(note, false, "name", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(r.notificationData(self).name)
	})
	r.define(note, false, "object", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(r.notificationData(self).object)
	})
	r.define(note, false, "userInfo", "@@:", func(objc.Handle, objc.Selector, []uintptr) uintptr {
		return 0
	})
}

func (r *Runtime) stringData(h objc.Handle) *stringData {
	if inst := r.OS.GetInstance(h); inst != nil {
		if sd, ok := inst.Data().(*stringData); ok {
			return sd
		}
	}
	return &stringData{}
}

func (r *Runtime) notificationData(h objc.Handle) *notificationData {
	if inst := r.OS.GetInstance(h); inst != nil {
		if nd, ok := inst.Data().(*notificationData); ok {
			return nd
		}
	}
	return &notificationData{}
}
