package memory

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Los repositorios guardan valores y devuelven copias: modificar lo devuelto no altera el
// almacén hasta que se llama a Update.

// --- Stock ---

type stockRepo struct{ r *repos }

func findStock(d *data, productID, locationID string) (entity.Stock, bool) {
	for _, s := range d.stock {
		if s.ProductID == productID && s.LocationID == locationID {
			return s, true
		}
	}
	return entity.Stock{}, false
}

func (s *stockRepo) Get(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	var out *entity.Stock
	s.r.read(func(d *data) {
		if st, ok := findStock(d, productID, locationID); ok {
			out = &st
		}
	})
	return out, nil
}

// GetForUpdate no necesita bloqueo propio: las transacciones ya se serializan en Store.Run.
func (s *stockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	return s.Get(ctx, productID, locationID)
}

func (s *stockRepo) AddQuantity(ctx context.Context, stock *entity.Stock) (*entity.Stock, error) {
	var (
		out entity.Stock
		err error
	)
	s.r.write(func(d *data) {
		cur, ok := findStock(d, stock.ProductID, stock.LocationID)
		if !ok {
			cur = entity.Stock{}
		}
		if !cur.CanAdd(stock.Quantity) {
			err = entity.QuantityOverflow(stock.ProductID, stock.LocationID)
			return
		}
		if ok {
			cur.Quantity += stock.Quantity
			cur.UpdatedAt = stock.UpdatedAt
			d.stock[cur.ID] = cur
			out = cur
			return
		}
		d.stock[stock.ID] = *stock
		out = *stock
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *stockRepo) Update(ctx context.Context, stock *entity.Stock) error {
	var err error
	s.r.write(func(d *data) {
		if _, ok := d.stock[stock.ID]; !ok {
			err = domain.NotFound("stock with id: %s not found", stock.ID)
			return
		}
		d.stock[stock.ID] = *stock
	})
	return err
}

func (s *stockRepo) Delete(ctx context.Context, id string) error {
	s.r.write(func(d *data) { delete(d.stock, id) })
	return nil
}

func (s *stockRepo) List(ctx context.Context, filter repository.StockFilter, limit, offset int) ([]*entity.Stock, int, error) {
	var all []*entity.Stock
	s.r.read(func(d *data) {
		for _, st := range d.stock {
			if filter.ProductID != "" && st.ProductID != filter.ProductID {
				continue
			}
			if filter.LocationID != "" && st.LocationID != filter.LocationID {
				continue
			}
			st := st
			all = append(all, &st)
		}
	})
	sortByCreation(all, func(s *entity.Stock) (time.Time, string) { return s.CreatedAt, s.ID })
	return page(all, limit, offset), len(all), nil
}

// --- Conteos ---

type stockCountRepo struct{ r *repos }

func (c *stockCountRepo) Create(ctx context.Context, count *entity.StockCount) error {
	var err error
	c.r.write(func(d *data) {
		if _, ok := d.counts[count.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		d.counts[count.ID] = *count
	})
	return err
}

func (c *stockCountRepo) GetByID(ctx context.Context, id string) (*entity.StockCount, error) {
	var out *entity.StockCount
	c.r.read(func(d *data) {
		if v, ok := d.counts[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (c *stockCountRepo) List(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockCount, int, error) {
	var all []*entity.StockCount
	c.r.read(func(d *data) {
		for _, v := range d.counts {
			if stockID != "" && v.StockID != stockID {
				continue
			}
			v := v
			all = append(all, &v)
		}
	})
	sortByCreation(all, func(v *entity.StockCount) (time.Time, string) { return v.CountedAt, v.ID })
	return page(all, limit, offset), len(all), nil
}

// --- Operaciones ---

type operationRepo struct{ r *repos }

func (o *operationRepo) Create(ctx context.Context, op *entity.Operation) error {
	var err error
	o.r.write(func(d *data) {
		if _, ok := d.operations[op.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		v := *op
		v.Details = nil
		d.operations[op.ID] = v
	})
	return err
}

func (o *operationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	var out *entity.Operation
	o.r.read(func(d *data) {
		if v, ok := d.operations[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (o *operationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Operation, error) {
	return o.GetByID(ctx, id)
}

func (o *operationRepo) Update(ctx context.Context, op *entity.Operation) error {
	var err error
	o.r.write(func(d *data) {
		if _, ok := d.operations[op.ID]; !ok {
			err = domain.NotFound("operation with id: %s not found", op.ID)
			return
		}
		v := *op
		v.Details = nil
		d.operations[op.ID] = v
	})
	return err
}

func (o *operationRepo) List(ctx context.Context, filter repository.OperationFilter, limit, offset int) ([]*entity.Operation, int, error) {
	var all []*entity.Operation
	o.r.read(func(d *data) {
		for _, v := range d.operations {
			if filter.Type != "" && v.Type != filter.Type {
				continue
			}
			v := v
			all = append(all, &v)
		}
	})
	sortByCreation(all, func(v *entity.Operation) (time.Time, string) { return v.CreatedAt, v.ID })
	return page(all, limit, offset), len(all), nil
}

// --- Líneas ---

type detailRepo struct{ r *repos }

func (o *detailRepo) Create(ctx context.Context, detail *entity.OperationDetail) error {
	var err error
	o.r.write(func(d *data) {
		if _, ok := d.details[detail.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		d.details[detail.ID] = *detail
	})
	return err
}

func (o *detailRepo) GetByID(ctx context.Context, id string) (*entity.OperationDetail, error) {
	var out *entity.OperationDetail
	o.r.read(func(d *data) {
		if v, ok := d.details[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (o *detailRepo) Update(ctx context.Context, detail *entity.OperationDetail) error {
	var err error
	o.r.write(func(d *data) {
		if _, ok := d.details[detail.ID]; !ok {
			err = domain.NotFound("operation detail with id: %s not found", detail.ID)
			return
		}
		d.details[detail.ID] = *detail
	})
	return err
}

func (o *detailRepo) Delete(ctx context.Context, id string) error {
	o.r.write(func(d *data) { delete(d.details, id) })
	return nil
}

func (o *detailRepo) ListByOperation(ctx context.Context, operationID string) ([]*entity.OperationDetail, error) {
	list, _, err := o.List(ctx, operationID, 0, 0)
	return list, err
}

func (o *detailRepo) List(ctx context.Context, operationID string, limit, offset int) ([]*entity.OperationDetail, int, error) {
	all := []*entity.OperationDetail{}
	o.r.read(func(d *data) {
		for _, v := range d.details {
			if operationID != "" && v.OperationID != operationID {
				continue
			}
			v := v
			all = append(all, &v)
		}
	})
	sortByCreation(all, func(v *entity.OperationDetail) (time.Time, string) { return v.CreatedAt, v.ID })
	return page(all, limit, offset), len(all), nil
}

// --- Datos maestros (solo lectura) ---

type productRepo struct{ r *repos }

func (p *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	p.r.read(func(d *data) {
		if v, ok := d.products[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (p *productRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	p.r.read(func(d *data) {
		for _, v := range d.products {
			if v.SKU == sku {
				v := v
				out = &v
				return
			}
		}
	})
	return out, nil
}

type locationRepo struct{ r *repos }

func (l *locationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	l.r.read(func(d *data) {
		if v, ok := d.locations[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (l *locationRepo) GetByName(ctx context.Context, name string) (*entity.Location, error) {
	var out *entity.Location
	l.r.read(func(d *data) {
		for _, v := range d.locations {
			if v.Name == name {
				v := v
				out = &v
				return
			}
		}
	})
	return out, nil
}

type userRepo struct{ r *repos }

func (u *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	u.r.read(func(d *data) {
		if v, ok := d.users[id]; ok {
			out = &v
		}
	})
	return out, nil
}

type documentRepo struct{ r *repos }

func (o *documentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	o.r.read(func(d *data) {
		if v, ok := d.documents[id]; ok {
			out = &v
		}
	})
	return out, nil
}
