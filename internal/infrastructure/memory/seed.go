package memory

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// IDs fijos del conjunto de demostración.
const (
	DemoWarehouseID = "00000000-0000-0000-0000-000000000001"
	DemoUserID      = "00000000-0000-0000-0000-0000000000a1"
	DemoDocumentID  = "00000000-0000-0000-0000-0000000000d1"
)

// SeedDemo carga datos maestros mínimos para probar la API con STORAGE_DRIVER=memory.
func SeedDemo(s *Store, now time.Time) {
	s.PutUser(entity.User{ID: DemoUserID, Username: "operador", Email: "operador@example.com", IsActive: true, CreatedAt: now})
	s.PutDocument(entity.Document{ID: DemoDocumentID, Number: "DOC-0001", Date: now, IsActive: true, CreatedAt: now})

	products := []entity.Product{
		{ID: "00000000-0000-0000-0000-0000000000b1", SKU: "SKU-001", Name: "Caja pequeña"},
		{ID: "00000000-0000-0000-0000-0000000000b2", SKU: "SKU-002", Name: "Caja grande"},
	}
	for _, p := range products {
		p.IsActive = true
		p.CreatedAt, p.UpdatedAt = now, now
		s.PutProduct(p)
	}

	locations := []entity.Location{
		{ID: "00000000-0000-0000-0000-0000000000c1", Name: "A-01"},
		{ID: "00000000-0000-0000-0000-0000000000c2", Name: "A-02"},
		{ID: "00000000-0000-0000-0000-0000000000c3", Name: "MUELLE"},
	}
	for _, l := range locations {
		l.WarehouseID = DemoWarehouseID
		l.IsActive = true
		l.CreatedAt, l.UpdatedAt = now, now
		s.PutLocation(l)
	}
}
