package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aethersim/aether/internal/core/observability/log"
)

func writeAsset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func pollUntil(t *testing.T, p *FileProvider, n int) []*Asset {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var got []*Asset
	for time.Now().Before(deadline) {
		got = append(got, p.Poll()...)
		if len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d completed fetches, got %d", n, len(got))
	return nil
}

func TestLoadCompletesThroughPoll(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "level1.yaml", "id: 1")
	p := NewFileProvider(log.Nop(), dir)

	if p.IsReady("level1.yaml") {
		t.Fatal("asset ready before any load")
	}
	if _, err := p.Get("level1.yaml"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Get before load = %v, want ErrNotReady", err)
	}

	p.Load("level1.yaml")
	got := pollUntil(t, p, 1)
	if got[0].Name != "level1.yaml" {
		t.Fatalf("completed = %q", got[0].Name)
	}
	if got[0].Checksum == 0 {
		t.Fatal("checksum not computed")
	}
	if !p.IsReady("level1.yaml") {
		t.Fatal("asset should be ready after poll")
	}
	a, err := p.Get("level1.yaml")
	if err != nil || string(a.Data) != "id: 1" {
		t.Fatalf("Get = %q, %v", a.Data, err)
	}
}

func TestLoadMissingFileLogsAndStaysPending(t *testing.T) {
	p := NewFileProvider(log.Nop(), t.TempDir())
	p.Load("nope.yaml")
	time.Sleep(50 * time.Millisecond)
	if got := p.Poll(); len(got) != 0 {
		t.Fatalf("poll returned %d assets for a failed fetch", len(got))
	}
	if p.IsReady("nope.yaml") {
		t.Fatal("failed fetch must not become ready")
	}
}

func TestPrefetch(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.yaml", "a")
	writeAsset(t, dir, "b.yaml", "b")
	p := NewFileProvider(log.Nop(), dir)
	if err := p.Prefetch("a.yaml", "b.yaml"); err != nil {
		t.Fatal(err)
	}
	if !p.IsReady("a.yaml") || !p.IsReady("b.yaml") {
		t.Fatal("prefetched assets should be ready")
	}
	if err := p.Prefetch("missing.yaml"); err == nil {
		t.Fatal("prefetch of a missing file should fail")
	}
}

func TestReadyCode(t *testing.T) {
	if got := ReadyCode("level1.yaml"); got != "ASSET_READY: level1.yaml" {
		t.Fatalf("ReadyCode = %q", got)
	}
}
