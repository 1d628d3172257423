package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
// Los histogramas por producto y método de pago se guardan como JSONB.
// La comparación de nombres usa unaccent(lower(...)) (extensión unaccent).
type CustomerRepo struct {
	c conn
}

// NewCustomerRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier, timeout time.Duration) *CustomerRepo {
	return &CustomerRepo{c: newConn(q, timeout)}
}

const customerCols = `id, name, email, phone, total_visits, first_visit, last_visit,
	total_spent, average_spent, product_stats, payment_stats, loyalty_points, tier,
	coworking_visits, coworking_hours, membership_status, membership_type,
	membership_start, membership_end, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var productStats, paymentStats []byte
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.TotalVisits, &c.FirstVisit,
		&c.LastVisit, &c.TotalSpent, &c.AverageSpent, &productStats, &paymentStats,
		&c.LoyaltyPoints, &c.Tier, &c.CoworkingVisits, &c.CoworkingHours,
		&c.MembershipStatus, &c.MembershipType, &c.MembershipStart, &c.MembershipEnd,
		&c.CreatedAt, &c.UpdatedAt, &c.IsDeleted, &c.DeletedAt, &c.DeletedBy)
	if err != nil {
		return nil, err
	}
	if len(productStats) > 0 {
		if err := json.Unmarshal(productStats, &c.ProductStats); err != nil {
			return nil, fmt.Errorf("decodificar product_stats: %w", err)
		}
	}
	if len(paymentStats) > 0 {
		if err := json.Unmarshal(paymentStats, &c.PaymentStats); err != nil {
			return nil, fmt.Errorf("decodificar payment_stats: %w", err)
		}
	}
	return &c, nil
}

func (r *CustomerRepo) encodeStats(c *entity.Customer) (productStats, paymentStats []byte, err error) {
	productStats, err = json.Marshal(c.ProductStats)
	if err != nil {
		return nil, nil, err
	}
	paymentStats, err = json.Marshal(c.PaymentStats)
	return productStats, paymentStats, err
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	productStats, paymentStats, err := r.encodeStats(customer)
	if err != nil {
		return storageErr("codificar stats", err)
	}
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err = r.c.q.Exec(ctx, `
		INSERT INTO customers (`+customerCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.TotalVisits,
		customer.FirstVisit, customer.LastVisit, customer.TotalSpent, customer.AverageSpent,
		productStats, paymentStats, customer.LoyaltyPoints, customer.Tier,
		customer.CoworkingVisits, customer.CoworkingHours, customer.MembershipStatus,
		customer.MembershipType, customer.MembershipStart, customer.MembershipEnd,
		customer.CreatedAt, customer.UpdatedAt, customer.IsDeleted, customer.DeletedAt, customer.DeletedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	c, err := scanCustomer(r.c.q.QueryRow(ctx, `SELECT `+customerCols+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get customer", err)
	}
	return c, nil
}

// GetByName busca un cliente por nombre normalizado. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	c, err := scanCustomer(r.c.q.QueryRow(ctx, `
		SELECT `+customerCols+` FROM customers
		WHERE NOT is_deleted AND unaccent(lower(trim(name))) = unaccent(lower(trim($1)))
		LIMIT 1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get customer by name", err)
	}
	return c, nil
}

// List lista los clientes no borrados.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, `
		SELECT `+customerCols+` FROM customers WHERE NOT is_deleted ORDER BY created_at`)
	if err != nil {
		return nil, storageErr("list customers", err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// Search devuelve los clientes cuyo nombre, email o teléfono contiene el término.
func (r *CustomerRepo) Search(ctx context.Context, query string) ([]*entity.Customer, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, `
		SELECT `+customerCols+` FROM customers
		WHERE NOT is_deleted AND (
			unaccent(lower(name)) LIKE '%' || unaccent(lower($1)) || '%'
			OR email ILIKE '%' || $1 || '%'
			OR phone LIKE '%' || $1 || '%'
		)
		ORDER BY name`, query)
	if err != nil {
		return nil, storageErr("search customers", err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func collectCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, storageErr("scan customer", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update reemplaza el cliente existente con el mismo ID.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	productStats, paymentStats, err := r.encodeStats(customer)
	if err != nil {
		return storageErr("codificar stats", err)
	}
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE customers SET name = $2, email = $3, phone = $4, total_visits = $5,
			first_visit = $6, last_visit = $7, total_spent = $8, average_spent = $9,
			product_stats = $10, payment_stats = $11, loyalty_points = $12, tier = $13,
			coworking_visits = $14, coworking_hours = $15, membership_status = $16,
			membership_type = $17, membership_start = $18, membership_end = $19, updated_at = $20
		WHERE id = $1`,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.TotalVisits,
		customer.FirstVisit, customer.LastVisit, customer.TotalSpent, customer.AverageSpent,
		productStats, paymentStats, customer.LoyaltyPoints, customer.Tier,
		customer.CoworkingVisits, customer.CoworkingHours, customer.MembershipStatus,
		customer.MembershipType, customer.MembershipStart, customer.MembershipEnd, customer.UpdatedAt,
	)
	if err != nil {
		return storageErr("update customer", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el cliente como borrado con metadatos de baja.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id, actor string) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE customers SET is_deleted = true, deleted_at = now(), deleted_by = $2, updated_at = now()
		WHERE id = $1`, id, actor)
	if err != nil {
		return storageErr("soft delete customer", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
