//go:build !amd64 && !arm64

package cpuinfo

func features() []string { return nil }
