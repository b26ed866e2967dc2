// Package cpuinfo reports the CPU features relevant to the numeric kernels.
// The report is logged when an engine starts so results can be correlated
// with the hardware that produced them.
package cpuinfo

import (
	"runtime"
	"strconv"
	"strings"
)

// Info describes the host CPU.
type Info struct {
	Arch     string
	CPUs     int
	Features []string
}

// String renders the info as "arch/cpus [features]".
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString(i.Arch)
	sb.WriteByte('/')
	sb.WriteString(strconv.Itoa(i.CPUs))
	if len(i.Features) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(i.Features, " "))
		sb.WriteByte(']')
	}
	return sb.String()
}

// Has reports whether feature name was detected.
func (i Info) Has(name string) bool {
	for _, f := range i.Features {
		if f == name {
			return true
		}
	}
	return false
}

// Detect returns the host CPU info.
func Detect() Info {
	return Info{
		Arch:     runtime.GOARCH,
		CPUs:     runtime.NumCPU(),
		Features: features(),
	}
}
