package bond

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/rigado/bredr/linux/hci"
)

// store is a file-backed hci.KeyStore. One JSON document holds every
// bonded peer; the file is rewritten on each save.
type store struct {
	filename string
	lock     sync.RWMutex
}

type bondFile struct {
	Bonds []peerKeyInfo `json:"bonds"`
}

type peerKeyInfo struct {
	Address string `json:"address"`
	LinkKey string `json:"linkKey"`
	KeyType byte   `json:"keyType"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// New creates a key store persisted at filename. The file is created
// on first use.
func New(filename string) hci.KeyStore {
	return &store{filename: filename}
}

func (s *store) Exists(addr string) bool {
	if len(addr) != 12 {
		return false
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	bonds, err := s.load()
	if err != nil {
		return false
	}

	for _, b := range bonds.Bonds {
		if b.Address == addr {
			return true
		}
	}

	return false
}

func (s *store) Find(addr string) (hci.StoredKey, error) {
	if len(addr) != 12 {
		return nil, errors.Errorf("invalid address: %s", addr)
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	bonds, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, b := range bonds.Bonds {
		if b.Address != addr {
			continue
		}

		kb, err := hex.DecodeString(b.LinkKey)
		if err != nil || len(kb) != hci.LinkKeySize {
			return nil, errors.Errorf("invalid link key stored for %s", addr)
		}

		var key hci.LinkKey
		copy(key[:], kb)
		return hci.NewStoredKey(key, hci.LinkKeyType(b.KeyType)), nil
	}

	return nil, errors.Errorf("no bond information found for %s", addr)
}

func (s *store) Save(addr string, key hci.StoredKey) error {
	if len(addr) != 12 {
		return errors.Errorf("invalid address: %s", addr)
	}
	if key == nil {
		return errors.New("empty key information")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	bonds, err := s.load()
	if err != nil {
		return err
	}

	k := key.Key()
	info := peerKeyInfo{
		Address: addr,
		LinkKey: hex.EncodeToString(k[:]),
		KeyType: byte(key.Type()),
	}

	// replace an existing bond for the same peer
	replaced := false
	for i, b := range bonds.Bonds {
		if b.Address == addr {
			bonds.Bonds[i] = info
			replaced = true
			break
		}
	}
	if !replaced {
		bonds.Bonds = append(bonds.Bonds, info)
	}

	return s.flush(bonds)
}

func (s *store) Delete(addr string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	bonds, err := s.load()
	if err != nil {
		return err
	}

	kept := bonds.Bonds[:0]
	for _, b := range bonds.Bonds {
		if b.Address != addr {
			kept = append(kept, b)
		}
	}
	bonds.Bonds = kept

	return s.flush(bonds)
}

func (s *store) load() (*bondFile, error) {
	if _, err := os.Stat(s.filename); os.IsNotExist(err) {
		f, err := os.Create(s.filename)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create bond file")
		}
		_ = f.Close()
	}

	data, err := ioutil.ReadFile(s.filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read bond file")
	}

	var bonds bondFile
	if len(data) > 0 {
		if err := json.Unmarshal(data, &bonds); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal bond file")
		}
	}

	return &bonds, nil
}

func (s *store) flush(bonds *bondFile) error {
	out, err := json.Marshal(bonds)
	if err != nil {
		return errors.Wrap(err, "failed to marshal bonds")
	}

	if err := ioutil.WriteFile(s.filename, out, 0644); err != nil {
		return errors.Wrap(err, "failed to write bond file")
	}

	return nil
}
