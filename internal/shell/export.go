package shell

import (
	"fmt"
	"strings"
)

// EnvName returns explicit when set, otherwise key upper-cased with dashes
// turned into underscores and prefix prepended.
func EnvName(key, explicit, prefix string) string {
	if explicit != "" {
		return explicit
	}
	return prefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Export returns the line assigning value to the variable name in the
// dialect t. With persist the variable outlives the session where the
// dialect supports it: export for sh, setx for cmd and the user scope for
// powershell.
func Export(t Type, name, value string, persist bool) (string, error) {
	switch t {
	case TypeSh:
		return exportSh(name, value, persist), nil
	case TypePowershell:
		return exportPowershell(name, value, persist), nil
	case TypeCmd:
		return exportCmd(name, value, persist), nil
	default:
		return "", fmt.Errorf("unsupported shell type: %v", t)
	}
}

// splitPreserveNewlines splits s around "\r\n", "\r" and "\n", keeping each
// newline sequence as its own element.
// "a\r\nb\nc\r" -> ["a", "\r\n", "b", "\n", "c", "\r"]
func splitPreserveNewlines(s string) []string {
	if s == "" {
		return []string{""}
	}
	var parts []string
	var buf strings.Builder
	for i := 0; i < len(s); {
		ch := s[i]
		if ch != '\r' && ch != '\n' {
			buf.WriteByte(ch)
			i++
			continue
		}
		if buf.Len() > 0 {
			parts = append(parts, buf.String())
			buf.Reset()
		}
		if ch == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			parts = append(parts, "\r\n")
			i += 2
		} else {
			parts = append(parts, string(ch))
			i++
		}
	}
	if buf.Len() > 0 {
		parts = append(parts, buf.String())
	}
	return parts
}

// shLiteral wraps s in single quotes, which may hold newlines. Embedded
// single quotes become '\''.
func shLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// powershellLiteral joins single-quoted pieces and escaped newlines with +
// so the result is one expression.
func powershellLiteral(s string) string {
	if s == "" {
		return "''"
	}
	var out []string
	for _, p := range splitPreserveNewlines(s) {
		switch p {
		case "\n":
			out = append(out, "\"`n\"")
		case "\r":
			out = append(out, "\"`r\"")
		case "\r\n":
			out = append(out, "\"`r`n\"")
		default:
			out = append(out, "'"+strings.ReplaceAll(p, "'", "''")+"'")
		}
	}
	return strings.Join(out, " + ")
}

// cmdText escapes s for use inside one pair of double quotes. Newlines are
// written as the literal text \n and \r.
func cmdText(s string) string {
	var sb strings.Builder
	for _, p := range splitPreserveNewlines(s) {
		switch p {
		case "\n":
			sb.WriteString(`\n`)
		case "\r":
			sb.WriteString(`\r`)
		case "\r\n":
			sb.WriteString(`\r\n`)
		default:
			sb.WriteString(strings.ReplaceAll(p, `"`, `\"`))
		}
	}
	return sb.String()
}

func exportSh(name, value string, persist bool) string {
	if persist {
		return fmt.Sprintf("export %s=%s", name, shLiteral(value))
	}
	return fmt.Sprintf("%s=%s", name, shLiteral(value))
}

func exportPowershell(name, value string, persist bool) string {
	if persist {
		return fmt.Sprintf("[System.Environment]::SetEnvironmentVariable(%s,%s,'User')",
			"'"+strings.ReplaceAll(name, "'", "''")+"'", powershellLiteral(value))
	}
	return fmt.Sprintf("$Env:%s = %s", name, powershellLiteral(value))
}

func exportCmd(name, value string, persist bool) string {
	if persist {
		return fmt.Sprintf("setx %s \"%s\"", name, cmdText(value))
	}
	return fmt.Sprintf("set \"%s=%s\"", name, cmdText(value))
}
