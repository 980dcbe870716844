package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"jozveh_bot/internal/models"
)

// Collection file names. Backup archives are matched against these on restore.
const (
	UsersFile     = "users.json"
	ProductsFile  = "products.json"
	OrdersFile    = "orders.json"
	PaymentsFile  = "pending_payments.json"
	PurchasesFile = "purchases.json"
	BlockedFile   = "blocked.json"
	AdminsFile    = "admins.json"
)

// Store keeps the whole dataset in memory and rewrites the JSON files after
// every mutation. A single mutex serializes each logical operation, so
// check-then-act sequences (payment approval, cascade deletes) cannot
// interleave.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger

	users     map[string]*models.User
	products  map[string]*models.Product
	orders    map[string][]models.Order
	payments  map[string]*models.PendingPayment
	purchases map[string][]models.Purchase
	blocked   []int64
	admins    []int64
}

func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{dir: dir, logger: logger}
	s.loadAll()
	return s, nil
}

// Dir is the data directory holding the collection files.
func (s *Store) Dir() string { return s.dir }

// DataFiles lists the six collection files bundled into backups, in a fixed
// order. The admin roster is deliberately not part of the bundle.
func (s *Store) DataFiles() []string {
	names := []string{UsersFile, ProductsFile, OrdersFile, PaymentsFile, PurchasesFile, BlockedFile}
	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(s.dir, n))
	}
	return paths
}

// Reload replaces the six in-memory collections with whatever is on disk,
// discarding unsaved mutations. Used after a backup archive is restored.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadCollections()
	s.persist()
}

func (s *Store) loadAll() {
	s.loadCollections()
	s.admins = []int64{}
	s.loadFile(AdminsFile, &s.admins)
}

func (s *Store) loadCollections() {
	s.users = map[string]*models.User{}
	s.products = map[string]*models.Product{}
	s.orders = map[string][]models.Order{}
	s.payments = map[string]*models.PendingPayment{}
	s.purchases = map[string][]models.Purchase{}
	s.blocked = []int64{}

	s.loadFile(UsersFile, &s.users)
	s.loadFile(ProductsFile, &s.products)
	s.loadFile(OrdersFile, &s.orders)
	s.loadFile(PaymentsFile, &s.payments)
	s.loadFile(PurchasesFile, &s.purchases)
	s.loadFile(BlockedFile, &s.blocked)
}

// loadFile leaves dst at its empty default on any read or decode error; a
// corrupt collection degrades to an empty one rather than blocking startup.
func (s *Store) loadFile(name string, dst interface{}) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warn("Failed to read collection", zap.String("file", name), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to decode collection, using empty default", zap.String("file", name), zap.Error(err))
		}
	}
}

// persist overwrites every collection file. Callers must hold the mutex.
func (s *Store) persist() {
	s.saveFile(UsersFile, s.users)
	s.saveFile(ProductsFile, s.products)
	s.saveFile(OrdersFile, s.orders)
	s.saveFile(PaymentsFile, s.payments)
	s.saveFile(PurchasesFile, s.purchases)
	s.saveFile(BlockedFile, s.blocked)
	s.saveFile(AdminsFile, s.admins)
}

func (s *Store) saveFile(name string, src interface{}) {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to encode collection", zap.String("file", name), zap.Error(err))
		}
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil && s.logger != nil {
		s.logger.Error("Failed to write collection", zap.String("file", name), zap.Error(err))
	}
}
