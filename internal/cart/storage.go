package cart

// Storage is the persistence slot for the cart, the server-side analogue of
// browser local storage. Implementations hold one opaque blob.
type Storage interface {
	Get() ([]byte, bool)
	Set(data []byte)
	Clear()
}

// MemoryStorage is the default in-process Storage.
type MemoryStorage struct {
	data []byte
	set  bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Get() ([]byte, bool) {
	if !m.set {
		return nil, false
	}
	return m.data, true
}

func (m *MemoryStorage) Set(data []byte) {
	m.data = data
	m.set = true
}

func (m *MemoryStorage) Clear() {
	m.data = nil
	m.set = false
}
