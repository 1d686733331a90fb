package utils

import (
	"io"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestHashFile(t *testing.T) {
	fs := memfs.New()
	if err := util.WriteFile(fs, "/a/hello.txt", []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := HashFile(fs, "/a/hello.txt")
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if got != helloSHA256 {
		t.Errorf("HashFile() = %s, want %s", got, helloSHA256)
	}
}

func TestHashFile_Missing(t *testing.T) {
	if _, err := HashFile(memfs.New(), "/nope"); err == nil {
		t.Error("HashFile() expected error for missing file")
	}
}

func TestHashSum_MatchesStreamedData(t *testing.T) {
	h := NewHash()
	if _, err := io.Copy(h, strings.NewReader("hello")); err != nil {
		t.Fatal(err)
	}
	if got := HashSum(h); got != helloSHA256 {
		t.Errorf("HashSum() = %s, want %s", got, helloSHA256)
	}
}
