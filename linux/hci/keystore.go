package hci

type storedKey struct {
	key     LinkKey
	keyType LinkKeyType
}

// KeyStore looks up and persists bonded BR/EDR link keys by peer
// address. Addresses are hex strings without separators, as produced by
// encoding the BD_ADDR MSB-first.
type KeyStore interface {
	Find(addr string) (StoredKey, error)
	Save(addr string, key StoredKey) error
	Exists(addr string) bool
	Delete(addr string) error
}

// StoredKey is one bonded link key together with the type the
// controller reported for it.
type StoredKey interface {
	Key() LinkKey
	Type() LinkKeyType
}

func NewStoredKey(key LinkKey, keyType LinkKeyType) StoredKey {
	return &storedKey{key: key, keyType: keyType}
}

func (s *storedKey) Key() LinkKey {
	return s.key
}

func (s *storedKey) Type() LinkKeyType {
	return s.keyType
}
