package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/vuelint/pkg/fsutil"
)

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("<template>\n  <a href='x'></a>\n</template>\n"))
	f.Add([]byte("\x00\x01\xff"))

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "fuzz.vue")

		if err := fsutil.WriteAtomic(ctx, path, content, 0o644); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("content mismatch")
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			t.Fatalf("CheckModified: %v", err)
		}
		if modified {
			t.Fatalf("freshly read file reported as modified")
		}

		if _, err := os.Stat(path + fsutil.BackupSuffix); err == nil {
			t.Fatalf("unexpected backup file")
		}
	})
}
