// Package shell writes values as environment variable assignments that the
// calling shell can evaluate.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

var knownShells = []string{
	"bash", "zsh", "fish", "ksh", "sh", "dash", "tcsh", "csh",
	"powershell.exe", "pwsh.exe", "cmd.exe",
}

// Decide returns t unless it is TypeAuto, in which case the shell that
// started the current process is detected.
func Decide(t Type) (Type, error) {
	switch t {
	case TypeSh, TypePowershell, TypeCmd:
		return t, nil
	case TypeAuto:
		name, err := detectUserShell()
		if err != nil {
			return TypeAuto, fmt.Errorf("cannot detect user shell: %w", err)
		}
		return FromName(name), nil
	default:
		return TypeAuto, fmt.Errorf("unsupported shell type: %v", t)
	}
}

// FromName maps a shell executable name to its dialect. Unknown names are
// treated as sh-like.
func FromName(name string) Type {
	name = strings.ToLower(filepath.Base(name))
	name = strings.TrimSuffix(name, ".exe")
	switch name {
	case "powershell", "pwsh":
		return TypePowershell
	case "cmd":
		return TypeCmd
	default:
		return TypeSh
	}
}

// detectUserShell walks the parent process chain looking for a known shell
// and falls back to SHELL or COMSPEC, which only name the default shell.
func detectUserShell() (string, error) {
	if name, ok := walkParents(); ok {
		return name, nil
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return filepath.Base(sh), nil
	}
	if com := os.Getenv("COMSPEC"); com != "" {
		return filepath.Base(com), nil
	}
	return "", fmt.Errorf("user shell not detected")
}

func walkParents() (string, bool) {
	p, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return "", false
	}
	seen := map[int32]struct{}{}
	for p != nil {
		if _, ok := seen[p.Pid]; ok {
			break
		}
		seen[p.Pid] = struct{}{}

		name, _ := p.Name()
		exe, _ := p.Exe()
		n := strings.ToLower(name)
		if n == "" && exe != "" {
			n = strings.ToLower(filepath.Base(exe))
		}
		if n != "" {
			for _, k := range knownShells {
				if strings.Contains(n, strings.TrimSuffix(k, ".exe")) {
					if name != "" {
						return name, true
					}
					return filepath.Base(exe), true
				}
			}
		}

		parent, err := p.Parent()
		if err != nil || parent == nil {
			break
		}
		p = parent
	}
	return "", false
}
