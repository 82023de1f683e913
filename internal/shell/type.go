//go:generate go run github.com/dmarkham/enumer -type=Type -trimprefix=Type -transform=kebab
package shell

import "github.com/spf13/pflag"

// Type is the shell dialect export lines are written for.
type Type int

const (
	TypeAuto Type = iota
	TypeSh
	TypePowershell
	TypeCmd
)

var _ pflag.Value = (*Type)(nil)

// Set implements pflag.Value.
func (i *Type) Set(s string) error {
	t, err := TypeString(s)
	if err != nil {
		return err
	}
	*i = t
	return nil
}

// Type implements pflag.Value.
func (i *Type) Type() string {
	return "shell"
}
