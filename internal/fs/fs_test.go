package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "blob")
	f, err := lfs.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	info, err := lfs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	entries, err := lfs.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	renamed := filepath.Join(dir, "renamed")
	require.NoError(t, lfs.Rename(path, renamed))
	require.NoError(t, lfs.Remove(renamed))
	_, err = lfs.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS(t *testing.T) {
	custom := errors.New("disk full")

	tests := []struct {
		name    string
		fault   Fault
		run     func(f File) error
		wantErr error
	}{
		{
			name:  "write limit",
			fault: Fault{FailAfterBytes: 3},
			run: func(f File) error {
				_, err := f.Write([]byte("hello"))
				return err
			},
			wantErr: ErrInjected,
		},
		{
			name:    "sync",
			fault:   Fault{FailAfterBytes: -1, FailOnSync: true},
			run:     func(f File) error { return f.Sync() },
			wantErr: ErrInjected,
		},
		{
			name:    "close with custom error",
			fault:   Fault{FailAfterBytes: -1, FailOnClose: true, Err: custom},
			run:     func(f File) error { return f.Close() },
			wantErr: custom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ffs := NewFaultyFS(nil)
			ffs.AddRule("bad", tt.fault)

			f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "bad-file"), os.O_CREATE|os.O_RDWR, 0o644)
			require.NoError(t, err)
			defer f.Close()

			assert.ErrorIs(t, tt.run(f), tt.wantErr)
		})
	}
}

func TestFaultyFSUnmatched(t *testing.T) {
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("bad", Fault{FailAfterBytes: 0, FailOnSync: true})

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "good"), os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())
	assert.NoError(t, f.Close())
}

func TestFaultyFSRename(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".tmp-", Fault{FailAfterBytes: -1, FailRename: true})

	src := filepath.Join(tmp, ".tmp-x")
	f, err := ffs.OpenFile(src, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.ErrorIs(t, ffs.Rename(src, filepath.Join(tmp, "x")), ErrInjected)

	other := filepath.Join(tmp, "y")
	require.NoError(t, os.WriteFile(other, nil, 0o644))
	assert.NoError(t, ffs.Rename(other, filepath.Join(tmp, "z")))
}
