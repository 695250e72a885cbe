package bond

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/rigado/bredr/linux/hci"
)

func tempStore(t *testing.T) (hci.KeyStore, string) {
	t.Helper()
	dir, err := ioutil.TempDir("", "bond")
	if err != nil {
		t.Fatalf("tempdir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	filename := filepath.Join(dir, "bonds.json")
	return New(filename), filename
}

func TestSaveFindRoundtrip(t *testing.T) {
	s, _ := tempStore(t)

	key := hci.LinkKey{0xDE, 0xAD, 0xBE, 0xEF}
	if err := s.Save("001122334455", hci.NewStoredKey(key, hci.KeyTypeAuthenticatedP256)); err != nil {
		t.Fatalf("save: %v", err)
	}

	if !s.Exists("001122334455") {
		t.Fatal("expected bond to exist")
	}

	got, err := s.Find("001122334455")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Key() != key {
		t.Fatalf("key = %x, want %x", got.Key(), key)
	}
	if got.Type() != hci.KeyTypeAuthenticatedP256 {
		t.Fatalf("key type = %s, want %s", got.Type(), hci.KeyTypeAuthenticatedP256)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	s, _ := tempStore(t)

	old := hci.LinkKey{0x01}
	upd := hci.LinkKey{0x02}
	if err := s.Save("001122334455", hci.NewStoredKey(old, hci.KeyTypeUnauthenticatedP192)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("001122334455", hci.NewStoredKey(upd, hci.KeyTypeAuthenticatedP256)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Find("001122334455")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Key() != upd || got.Type() != hci.KeyTypeAuthenticatedP256 {
		t.Fatal("expected updated bond to replace the original")
	}
}

func TestDelete(t *testing.T) {
	s, _ := tempStore(t)

	if err := s.Save("001122334455", hci.NewStoredKey(hci.LinkKey{0x01}, hci.KeyTypeAuthenticatedP192)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("665544332211", hci.NewStoredKey(hci.LinkKey{0x02}, hci.KeyTypeAuthenticatedP192)); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Delete("001122334455"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Exists("001122334455") {
		t.Fatal("deleted bond still exists")
	}
	if !s.Exists("665544332211") {
		t.Fatal("unrelated bond was lost")
	}
}

func TestFindMissing(t *testing.T) {
	s, _ := tempStore(t)

	if _, err := s.Find("001122334455"); err == nil {
		t.Fatal("expected an error for an unknown peer")
	}
}

func TestInvalidAddress(t *testing.T) {
	s, _ := tempStore(t)

	if _, err := s.Find("00:11:22:33:44:55"); err == nil {
		t.Fatal("expected an error for a non-hex address form")
	}
	if err := s.Save("0011", hci.NewStoredKey(hci.LinkKey{}, hci.KeyTypeAuthenticatedP192)); err == nil {
		t.Fatal("expected an error for a short address")
	}
	if s.Exists("0011") {
		t.Fatal("short address must never exist")
	}
}

func TestSaveNilKey(t *testing.T) {
	s, _ := tempStore(t)

	if err := s.Save("001122334455", nil); err == nil {
		t.Fatal("expected an error for a nil key")
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	s, filename := tempStore(t)

	key := hci.LinkKey{0xA5}
	if err := s.Save("001122334455", hci.NewStoredKey(key, hci.KeyTypeUnauthenticatedP256)); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened := New(filename)
	got, err := reopened.Find("001122334455")
	if err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
	if got.Key() != key {
		t.Fatal("expected bond to survive a reopen")
	}
}
