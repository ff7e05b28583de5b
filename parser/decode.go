package parser

import (
	"strconv"
	"strings"
)

// decodeStringLiteral strips the lexeme's quotes/prefix and, for non-raw
// strings, decodes backslash escapes. The lexeme is the raw token text
// exactly as the lexer produced it, e.g. `"a\nb"`, `r'''raw'''`.
func decodeStringLiteral(lexeme string) string {
	isRaw := strings.HasPrefix(lexeme, "r") || strings.HasPrefix(lexeme, "R")
	body := lexeme
	if isRaw {
		body = lexeme[1:]
	}

	if strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`) {
		content := body[3 : len(body)-3]
		if isRaw {
			return content
		}
		return unescape(content)
	}

	content := body[1 : len(body)-1]
	if isRaw {
		return content
	}
	return unescape(content)
}

// decodeBytesLiteral strips the b/B prefix and quotes, decoding escapes the
// same way a regular string would.
func decodeBytesLiteral(lexeme string) string {
	content := lexeme[2 : len(lexeme)-1]
	return unescape(content)
}

// unescape decodes backslash escape sequences. Any unrecognized `\X`
// sequence degrades gracefully: the backslash is kept literally.
func unescape(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '\\' || i+1 >= len(s) {
			out.WriteByte(s[i])
			i++
			continue
		}

		next := s[i+1]
		switch next {
		case '\\', '"', '\'', '`', '?':
			out.WriteByte(next)
			i += 2
		case 'a':
			out.WriteByte('\a')
			i += 2
		case 'b':
			out.WriteByte('\b')
			i += 2
		case 'f':
			out.WriteByte('\f')
			i += 2
		case 'n':
			out.WriteByte('\n')
			i += 2
		case 'r':
			out.WriteByte('\r')
			i += 2
		case 't':
			out.WriteByte('\t')
			i += 2
		case 'v':
			out.WriteByte('\v')
			i += 2
		case 'x', 'X':
			if i+3 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					out.WriteByte(byte(v))
					i += 4
					continue
				}
			}
			out.WriteByte(s[i])
			i++
		case 'u':
			if i+5 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+6], 16, 32); err == nil {
					out.WriteRune(rune(v))
					i += 6
					continue
				}
			}
			out.WriteByte(s[i])
			i++
		case 'U':
			if i+9 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+10], 16, 32); err == nil {
					out.WriteRune(rune(v))
					i += 10
					continue
				}
			}
			out.WriteByte(s[i])
			i++
		default:
			if isOctalEscape(s, i) {
				v, _ := strconv.ParseUint(s[i+1:i+4], 8, 8)
				out.WriteByte(byte(v))
				i += 4
			} else {
				out.WriteByte(s[i])
				i++
			}
		}
	}
	return out.String()
}

// isOctalEscape reports whether s[i:] begins a three-digit octal escape
// \OOO where the first digit is 0-3.
func isOctalEscape(s string, i int) bool {
	if i+3 >= len(s) {
		return false
	}
	d0, d1, d2 := s[i+1], s[i+2], s[i+3]
	return d0 >= '0' && d0 <= '3' && d1 >= '0' && d1 <= '7' && d2 >= '0' && d2 <= '7'
}
