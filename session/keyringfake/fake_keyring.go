package keyringfake

import (
	"sync"

	"github.com/outfitly/outfitly-cli/session"
)

var _ session.Keyring = (*FakeKeyring)(nil)

// FakeKeyring is an in-memory keyring for tests.
type FakeKeyring struct {
	values map[string]string
	lock   sync.RWMutex
}

func NewFakeKeyring() *FakeKeyring {
	return &FakeKeyring{values: make(map[string]string)}
}

func (k *FakeKeyring) Get(key string) (string, bool, error) {
	k.lock.RLock()
	defer k.lock.RUnlock()
	value, ok := k.values[key]
	return value, ok, nil
}

func (k *FakeKeyring) Set(key, value string) error {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.values[key] = value
	return nil
}

func (k *FakeKeyring) Delete(key string) error {
	k.lock.Lock()
	defer k.lock.Unlock()
	delete(k.values, key)
	return nil
}

// Len reports how many keys are stored. Test helper.
func (k *FakeKeyring) Len() int {
	k.lock.RLock()
	defer k.lock.RUnlock()
	return len(k.values)
}
