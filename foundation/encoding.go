package foundation

// NSStringEncoding identifies a text encoding.
//
// NSUTF16StringEncoding is missing; it is the same as
// NSUnicodeStringEncoding.
type NSStringEncoding uint

// Word implements objc.Arg.
func (e NSStringEncoding) Word() uintptr { return uintptr(e) }

const (
	// 7 and 8 bit encodings
	NSASCIIStringEncoding         NSStringEncoding = 1
	NSNEXTSTEPStringEncoding      NSStringEncoding = 2
	NSISOLatin1StringEncoding     NSStringEncoding = 5
	NSSymbolStringEncoding        NSStringEncoding = 6
	NSNonLossyASCIIStringEncoding NSStringEncoding = 7
	NSISOLatin2StringEncoding     NSStringEncoding = 9
	NSMacOSRomanStringEncoding    NSStringEncoding = 30

	// Japanese
	NSJapaneseEUCStringEncoding NSStringEncoding = 3
	NSShiftJISStringEncoding    NSStringEncoding = 8
	NSISO2022JPStringEncoding   NSStringEncoding = 21

	// Unicode
	NSUTF8StringEncoding              NSStringEncoding = 4
	NSUnicodeStringEncoding           NSStringEncoding = 10
	NSUTF16BigEndianStringEncoding    NSStringEncoding = 0x90000100
	NSUTF16LittleEndianStringEncoding NSStringEncoding = 0x94000100
	NSUTF32StringEncoding             NSStringEncoding = 0x8c000100
	NSUTF32BigEndianStringEncoding    NSStringEncoding = 0x98000100
	NSUTF32LittleEndianStringEncoding NSStringEncoding = 0x9c000100

	// Windows code pages
	NSWindowsCP1250StringEncoding NSStringEncoding = 15
	NSWindowsCP1251StringEncoding NSStringEncoding = 11
	NSWindowsCP1252StringEncoding NSStringEncoding = 12
	NSWindowsCP1253StringEncoding NSStringEncoding = 13
	NSWindowsCP1254StringEncoding NSStringEncoding = 14
)
