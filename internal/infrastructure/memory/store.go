package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Ensure Store implements ports.TxRunner y repository.Repositories.
var _ ports.TxRunner = (*Store)(nil)
var _ repository.Repositories = (*Store)(nil)

// data estado completo del almacén en memoria.
type data struct {
	products   map[string]entity.Product
	locations  map[string]entity.Location
	users      map[string]entity.User
	documents  map[string]entity.Document
	stock      map[string]entity.Stock
	counts     map[string]entity.StockCount
	operations map[string]entity.Operation
	details    map[string]entity.OperationDetail
}

func newData() *data {
	return &data{
		products:   map[string]entity.Product{},
		locations:  map[string]entity.Location{},
		users:      map[string]entity.User{},
		documents:  map[string]entity.Document{},
		stock:      map[string]entity.Stock{},
		counts:     map[string]entity.StockCount{},
		operations: map[string]entity.Operation{},
		details:    map[string]entity.OperationDetail{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.locations {
		c.locations[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.documents {
		c.documents[k] = v
	}
	for k, v := range d.stock {
		c.stock[k] = v
	}
	for k, v := range d.counts {
		c.counts[k] = v
	}
	for k, v := range d.operations {
		c.operations[k] = v
	}
	for k, v := range d.details {
		c.details[k] = v
	}
	return c
}

// Store almacén en memoria para desarrollo local y pruebas.
// Las transacciones se serializan (una a la vez) y trabajan sobre una copia del estado que
// solo se publica si fn no devuelve error; así el rollback es descartar la copia.
type Store struct {
	txMu sync.Mutex   // una transacción (o escritura directa) a la vez
	mu   sync.RWMutex // protege d
	d    *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// Run ejecuta fn con repositorios sobre una copia del estado y la confirma si no hay error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.d.clone()
	s.mu.RUnlock()

	if err := fn(&repos{store: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.d = work
	s.mu.Unlock()
	return nil
}

func (s *Store) direct() *repos { return &repos{store: s} }

// Stock, StockCounts, ... acceso fuera de transacción (lecturas y escrituras puntuales).
func (s *Store) Stock() repository.StockRepository {
	return s.direct().Stock()
}

func (s *Store) StockCounts() repository.StockCountRepository {
	return s.direct().StockCounts()
}

func (s *Store) Operations() repository.OperationRepository {
	return s.direct().Operations()
}

func (s *Store) OperationDetails() repository.OperationDetailRepository {
	return s.direct().OperationDetails()
}

func (s *Store) Products() repository.ProductRepository {
	return s.direct().Products()
}

func (s *Store) Locations() repository.LocationRepository {
	return s.direct().Locations()
}

func (s *Store) Users() repository.UserRepository {
	return s.direct().Users()
}

func (s *Store) Documents() repository.DocumentRepository {
	return s.direct().Documents()
}

// Datos maestros: el servicio solo los lee, así que el almacén en memoria ofrece
// métodos de carga para pruebas y para el modo de desarrollo.

// PutProduct inserta o reemplaza un producto.
func (s *Store) PutProduct(p entity.Product) {
	s.direct().write(func(d *data) { d.products[p.ID] = p })
}

// PutLocation inserta o reemplaza una ubicación.
func (s *Store) PutLocation(l entity.Location) {
	s.direct().write(func(d *data) { d.locations[l.ID] = l })
}

// PutUser inserta o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	s.direct().write(func(d *data) { d.users[u.ID] = u })
}

// PutDocument inserta o reemplaza un documento.
func (s *Store) PutDocument(doc entity.Document) {
	s.direct().write(func(d *data) { d.documents[doc.ID] = doc })
}

// repos implementa repository.Repositories sobre el estado compartido (tx == nil)
// o sobre la copia de una transacción.
type repos struct {
	store *Store
	tx    *data
}

func (r *repos) read(fn func(d *data)) {
	if r.tx != nil {
		fn(r.tx)
		return
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	fn(r.store.d)
}

func (r *repos) write(fn func(d *data)) {
	if r.tx != nil {
		fn(r.tx)
		return
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fn(r.store.d)
}

func (r *repos) Stock() repository.StockRepository {
	return &stockRepo{r}
}

func (r *repos) StockCounts() repository.StockCountRepository {
	return &stockCountRepo{r}
}

func (r *repos) Operations() repository.OperationRepository {
	return &operationRepo{r}
}

func (r *repos) OperationDetails() repository.OperationDetailRepository {
	return &detailRepo{r}
}

func (r *repos) Products() repository.ProductRepository {
	return &productRepo{r}
}

func (r *repos) Locations() repository.LocationRepository {
	return &locationRepo{r}
}

func (r *repos) Users() repository.UserRepository {
	return &userRepo{r}
}

func (r *repos) Documents() repository.DocumentRepository {
	return &documentRepo{r}
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// byCreation orden estable: fecha de creación y luego ID.
func byCreation(aAt time.Time, aID string, bAt time.Time, bID string) bool {
	if !aAt.Equal(bAt) {
		return aAt.Before(bAt)
	}
	return aID < bID
}

func sortByCreation[T any](items []T, key func(T) (time.Time, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		aAt, aID := key(items[i])
		bAt, bID := key(items[j])
		return byCreation(aAt, aID, bAt, bID)
	})
}
