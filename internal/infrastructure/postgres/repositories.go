package postgres

import "github.com/jhoicas/wms-api/internal/domain/repository"

var _ repository.Repositories = (*Repositories)(nil)

// Repositories agrupa los adaptadores sobre un mismo Querier (pool fuera de tx, pgx.Tx dentro).
type Repositories struct {
	q Querier
}

// NewRepositories construye el conjunto. Pasar pool o tx.
func NewRepositories(q Querier) *Repositories {
	return &Repositories{q: q}
}

func (r *Repositories) Stock() repository.StockRepository {
	return NewStockRepository(r.q)
}

func (r *Repositories) StockCounts() repository.StockCountRepository {
	return NewStockCountRepository(r.q)
}

func (r *Repositories) Operations() repository.OperationRepository {
	return NewOperationRepository(r.q)
}

func (r *Repositories) OperationDetails() repository.OperationDetailRepository {
	return NewOperationDetailRepository(r.q)
}

func (r *Repositories) Products() repository.ProductRepository {
	return NewProductRepository(r.q)
}

func (r *Repositories) Locations() repository.LocationRepository {
	return NewLocationRepository(r.q)
}

func (r *Repositories) Users() repository.UserRepository {
	return NewUserRepository(r.q)
}

func (r *Repositories) Documents() repository.DocumentRepository {
	return NewDocumentRepository(r.q)
}
