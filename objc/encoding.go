package objc

import "fmt"

// MethodArity returns the number of explicit arguments (after self and
// _cmd) in a method type encoding such as "v@:@" or "c24@0:8@16".
func MethodArity(types string) (int, error) {
	n := 0
	for i := 0; i < len(types); {
		next, err := skipType(types, i)
		if err != nil {
			return 0, err
		}
		i = next
		for i < len(types) && (types[i] >= '0' && types[i] <= '9' || types[i] == '-') {
			i++
		}
		n++
	}
	// return type, self, _cmd
	if n < 3 {
		return 0, fmt.Errorf("objc: method encoding %q lacks self and _cmd", types)
	}
	return n - 3, nil
}

// skipType returns the index just past the type starting at i.
func skipType(types string, i int) (int, error) {
	for i < len(types) {
		switch types[i] {
		case 'r', 'n', 'N', 'o', 'O', 'R', 'V', 'A', '^':
			// qualifiers and pointer prefix bind to the following type
			i++
			continue
		case '{':
			return skipNested(types, i, '{', '}')
		case '(':
			return skipNested(types, i, '(', ')')
		case '[':
			return skipNested(types, i, '[', ']')
		case '@':
			if i+1 < len(types) && types[i+1] == '?' {
				return i + 2, nil
			}
			if i+1 < len(types) && types[i+1] == '"' {
				for j := i + 2; j < len(types); j++ {
					if types[j] == '"' {
						return j + 1, nil
					}
				}
				return 0, fmt.Errorf("objc: unterminated class name in %q", types)
			}
			return i + 1, nil
		case 'b':
			i++
			for i < len(types) && types[i] >= '0' && types[i] <= '9' {
				i++
			}
			return i, nil
		default:
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("objc: truncated method encoding %q", types)
}

func skipNested(types string, i int, open, closing byte) (int, error) {
	depth := 0
	for j := i; j < len(types); j++ {
		switch types[j] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return j + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("objc: unbalanced %c in %q", open, types)
}
