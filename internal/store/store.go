package store

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

// Store owns every collection the application mutates: the product
// catalog, the orders, the append-only stock ledger and the user and
// community directories. It is constructed once in main and handed to
// the handlers; there is no package-level instance.
//
// A single mutex guards all of it. Order creation, cancellation and
// stock adjustment each have to validate against and then mutate the
// catalog, the order set and the ledger as one step, so every mutating
// operation takes the write lock before checking its preconditions and
// holds it until the mutation and its ledger entries are in place.
// That closes the check-then-act race two concurrent creations would
// otherwise have on the same product. All operations are in-memory and
// bounded; nothing blocks on I/O while holding the lock.
type Store struct {
	mu sync.RWMutex

	products    map[string]*models.Product
	orders      map[string]*models.Order
	movements   []models.StockMovement
	users       map[string]*models.User
	communities map[string]*models.Community

	orderSeq int

	log *logrus.Logger
}

func New(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		products:    make(map[string]*models.Product),
		orders:      make(map[string]*models.Order),
		users:       make(map[string]*models.User),
		communities: make(map[string]*models.Community),
		log:         log,
	}
}

// BatchResult partitions a batch operation's inputs into the ids that
// were applied and the ids that were rejected.
type BatchResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}
