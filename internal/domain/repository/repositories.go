package repository

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories interface {
	Stock() StockRepository
	StockCounts() StockCountRepository
	Operations() OperationRepository
	OperationDetails() OperationDetailRepository
	Products() ProductRepository
	Locations() LocationRepository
	Users() UserRepository
	Documents() DocumentRepository
}
