package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Tests
// substitute it with a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL. Every mutating
// call runs inside a transaction with its checks before its writes, so a
// failed call leaves no partial state behind.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type roleRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type reputationRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Roles() repository.RoleRepository {
	return &roleRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Reputations() repository.ReputationRepository {
	return &reputationRepository{storage: s}
}

var _ repository.Factory = (*Storage)(nil)

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS roles (
            account_id BIGINT PRIMARY KEY REFERENCES accounts(id),
            role TEXT NOT NULL,
            position BIGSERIAL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            seller_id BIGINT NOT NULL REFERENCES accounts(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL,
            price BIGINT NOT NULL,
            quantity BIGINT NOT NULL,
            category TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_sales (
            product_id BIGINT PRIMARY KEY REFERENCES products(id),
            sales BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES accounts(id),
            seller_id BIGINT NOT NULL REFERENCES accounts(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity BIGINT NOT NULL,
            state TEXT NOT NULL,
            buyer_accepts_cancel BOOLEAN NOT NULL DEFAULT FALSE,
            seller_accepts_cancel BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_ratings (
            order_id BIGINT PRIMARY KEY REFERENCES orders(id),
            by_buyer SMALLINT,
            by_seller SMALLINT
        )`,
		`CREATE TABLE IF NOT EXISTS reputations (
            account_id BIGINT PRIMARY KEY REFERENCES accounts(id),
            as_buyer_count BIGINT NOT NULL DEFAULT 0,
            as_buyer_sum BIGINT NOT NULL DEFAULT 0,
            as_seller_count BIGINT NOT NULL DEFAULT 0,
            as_seller_sum BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS category_stats (
            category TEXT PRIMARY KEY,
            sales BIGINT NOT NULL DEFAULT 0,
            rating_sum BIGINT NOT NULL DEFAULT 0,
            rating_count BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_seller ON products(seller_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, login, passwordHash string) (*model.Account, error) {
	const query = `INSERT INTO accounts (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var acc model.Account
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	acc.Login = login
	acc.PasswordHash = passwordHash
	return &acc, nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, created_at FROM accounts WHERE login=$1`
	var acc model.Account
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&acc.ID, &acc.Login, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, created_at FROM accounts WHERE id=$1`
	var acc model.Account
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&acc.ID, &acc.Login, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// --- RoleRepository implementation ---

func (r *roleRepository) Register(ctx context.Context, accountID int64, role model.Role) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var registered int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&registered); err != nil {
			return err
		}
		if registered >= math.MaxUint32 {
			return domainErrors.ErrOverflow
		}

		const insert = `INSERT INTO roles (account_id, role) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insert, accountID, role); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
}

func (r *roleRepository) Save(ctx context.Context, accountID int64, role model.Role) error {
	const query = `UPDATE roles SET role=$2 WHERE account_id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, accountID, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *roleRepository) Get(ctx context.Context, accountID int64) (model.Role, error) {
	const query = `SELECT role FROM roles WHERE account_id=$1`
	var role model.Role
	err := r.storage.pool.QueryRow(ctx, query, accountID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *roleRepository) ListRegistered(ctx context.Context) ([]int64, error) {
	const query = `SELECT account_id FROM roles ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) (uint64, error) {
	var id uint64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO products (seller_id, name, description, price, quantity, category)
                        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
		err := tx.QueryRow(ctx, insert,
			product.SellerID, product.Name, product.Description,
			product.Price, product.Quantity, product.Category,
		).Scan(&id, &product.CreatedAt)
		if err != nil {
			return err
		}

		const seedSales = `INSERT INTO product_sales (product_id, sales) VALUES ($1, 0)`
		if _, err := tx.Exec(ctx, seedSales, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	product.ID = id
	return id, nil
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category, &p.CreatedAt)
}

const productColumns = `id, seller_id, name, description, price, quantity, category, created_at`

func (r *productRepository) Get(ctx context.Context, id uint64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	var p model.Product
	if err := scanProduct(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) listProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id=$1 ORDER BY id`
	return r.listProducts(ctx, query, sellerID)
}

func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.listProducts(ctx, query)
}

func (r *productRepository) IncreaseStock(ctx context.Context, id uint64, amount uint32) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return increaseStockTx(ctx, tx, id, amount)
	})
}

func increaseStockTx(ctx context.Context, tx pgx.Tx, id uint64, amount uint32) error {
	var p model.Product
	err := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE id=$1 FOR UPDATE`, id).Scan(&p.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrProductNotFound
		}
		return err
	}
	if err := p.IncreaseStock(amount); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE products SET quantity=$2 WHERE id=$1`, id, p.Quantity)
	return err
}

func (r *productRepository) Sales(ctx context.Context, id uint64) (uint32, error) {
	const query = `SELECT sales FROM product_sales WHERE product_id=$1`
	var sales uint32
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&sales)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return sales, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, buyer_id, seller_id, product_id, quantity, state,
                      buyer_accepts_cancel, seller_accepts_cancel, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.Quantity, &o.State,
		&o.BuyerAcceptsCancel, &o.SellerAcceptsCancel, &o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Create(ctx context.Context, buyerID int64, productID uint64, quantity uint32) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var product model.Product
		const lockProduct = `SELECT seller_id, quantity FROM products WHERE id=$1 FOR UPDATE`
		err := tx.QueryRow(ctx, lockProduct, productID).Scan(&product.SellerID, &product.Quantity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrProductNotFound
			}
			return err
		}

		if err := product.DecreaseStock(quantity); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE products SET quantity=$2 WHERE id=$1`, productID, product.Quantity); err != nil {
			return err
		}

		const insert = `INSERT INTO orders (buyer_id, seller_id, product_id, quantity, state)
                        VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
		err = tx.QueryRow(ctx, insert, buyerID, product.SellerID, productID, quantity, model.OrderStatePending).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}
		order.BuyerID = buyerID
		order.SellerID = product.SellerID
		order.ProductID = productID
		order.Quantity = quantity
		order.State = model.OrderStatePending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Get(ctx context.Context, id uint64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) MarkShipped(ctx context.Context, callerID int64, orderID uint64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var sellerID int64
		var state model.OrderState
		const lock = `SELECT seller_id, state FROM orders WHERE id=$1 FOR UPDATE`
		err := tx.QueryRow(ctx, lock, orderID).Scan(&sellerID, &state)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrOrderNotFound
			}
			return err
		}
		if sellerID != callerID {
			return domainErrors.ErrNotAuthorized
		}
		if state != model.OrderStatePending {
			return domainErrors.ErrInvalidState
		}

		const update = `UPDATE orders SET state=$2, updated_at=NOW() WHERE id=$1`
		_, err = tx.Exec(ctx, update, orderID, model.OrderStateShipped)
		return err
	})
}

func (r *orderRepository) MarkReceived(ctx context.Context, callerID int64, orderID uint64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var buyerID int64
		var productID uint64
		var state model.OrderState
		const lock = `SELECT buyer_id, product_id, state FROM orders WHERE id=$1 FOR UPDATE`
		err := tx.QueryRow(ctx, lock, orderID).Scan(&buyerID, &productID, &state)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrOrderNotFound
			}
			return err
		}
		if buyerID != callerID {
			return domainErrors.ErrNotAuthorized
		}
		if state != model.OrderStateShipped {
			return domainErrors.ErrInvalidState
		}

		var sales uint32
		const lockSales = `SELECT sales FROM product_sales WHERE product_id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockSales, productID).Scan(&sales); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if sales == math.MaxUint32 {
			return domainErrors.ErrOverflow
		}

		const update = `UPDATE orders SET state=$2, updated_at=NOW() WHERE id=$1`
		if _, err := tx.Exec(ctx, update, orderID, model.OrderStateReceived); err != nil {
			return err
		}

		const bumpSales = `INSERT INTO product_sales (product_id, sales) VALUES ($1, 1)
                           ON CONFLICT (product_id) DO UPDATE SET sales = product_sales.sales + 1`
		if _, err := tx.Exec(ctx, bumpSales, productID); err != nil {
			return err
		}

		// Receiving opens the order's ratings record with both slots empty.
		const openRatings = `INSERT INTO order_ratings (order_id) VALUES ($1)`
		if _, err := tx.Exec(ctx, openRatings, orderID); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) RequestCancelByBuyer(ctx context.Context, callerID int64, orderID uint64) error {
	return r.consentCancel(ctx, callerID, orderID, true)
}

func (r *orderRepository) AcceptCancelBySeller(ctx context.Context, callerID int64, orderID uint64) error {
	return r.consentCancel(ctx, callerID, orderID, false)
}

func (r *orderRepository) consentCancel(ctx context.Context, callerID int64, orderID uint64, byBuyer bool) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var order model.Order
		lock := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		if err := scanOrder(tx.QueryRow(ctx, lock, orderID), &order); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrOrderNotFound
			}
			return err
		}

		expected := order.SellerID
		if byBuyer {
			expected = order.BuyerID
		}
		if callerID != expected {
			return domainErrors.ErrNotAuthorized
		}
		if !order.Cancelable() {
			return domainErrors.ErrInvalidState
		}

		if byBuyer {
			order.BuyerAcceptsCancel = true
		} else {
			order.SellerAcceptsCancel = true
		}

		if order.CancelIfBothAccept() {
			if err := increaseStockTx(ctx, tx, order.ProductID, order.Quantity); err != nil {
				return err
			}
		}

		const update = `UPDATE orders SET state=$2, buyer_accepts_cancel=$3, seller_accepts_cancel=$4, updated_at=NOW()
                        WHERE id=$1`
		_, err := tx.Exec(ctx, update, orderID, order.State, order.BuyerAcceptsCancel, order.SellerAcceptsCancel)
		return err
	})
}

func (r *orderRepository) CountByBuyer(ctx context.Context, accountID int64) (uint32, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE buyer_id=$1`
	var count uint32
	if err := r.storage.pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// --- ReputationRepository implementation ---

func (r *reputationRepository) RateSeller(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrderForRating(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.BuyerID != callerID {
			return domainErrors.ErrNotAuthorized
		}
		if order.State != model.OrderStateReceived {
			return domainErrors.ErrOrderNotReceived
		}

		var byBuyer *uint8
		const lockRatings = `SELECT by_buyer FROM order_ratings WHERE order_id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockRatings, orderID).Scan(&byBuyer); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInvalidState
			}
			return err
		}
		if byBuyer != nil {
			return domainErrors.ErrAlreadyRated
		}

		rep, err := lockReputation(ctx, tx, order.SellerID)
		if err != nil {
			return err
		}
		if err := rep.AddAsSeller(score); err != nil {
			return err
		}
		if err := saveReputation(ctx, tx, order.SellerID, rep); err != nil {
			return err
		}

		const record = `UPDATE order_ratings SET by_buyer=$2 WHERE order_id=$1`
		if _, err := tx.Exec(ctx, record, orderID, score); err != nil {
			return err
		}

		return accumulateCategoryTx(ctx, tx, order.ProductID, score)
	})
}

func (r *reputationRepository) RateBuyer(ctx context.Context, callerID int64, orderID uint64, score uint8) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrderForRating(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.SellerID != callerID {
			return domainErrors.ErrNotAuthorized
		}
		if order.State != model.OrderStateReceived {
			return domainErrors.ErrOrderNotReceived
		}

		var bySeller *uint8
		const lockRatings = `SELECT by_seller FROM order_ratings WHERE order_id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockRatings, orderID).Scan(&bySeller); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInvalidState
			}
			return err
		}
		if bySeller != nil {
			return domainErrors.ErrAlreadyRated
		}

		rep, err := lockReputation(ctx, tx, order.BuyerID)
		if err != nil {
			return err
		}
		if err := rep.AddAsBuyer(score); err != nil {
			return err
		}
		if err := saveReputation(ctx, tx, order.BuyerID, rep); err != nil {
			return err
		}

		const record = `UPDATE order_ratings SET by_seller=$2 WHERE order_id=$1`
		_, err = tx.Exec(ctx, record, orderID, score)
		return err
	})
}

func lockOrderForRating(ctx context.Context, tx pgx.Tx, orderID uint64) (*model.Order, error) {
	var order model.Order
	const lock = `SELECT buyer_id, seller_id, product_id, state FROM orders WHERE id=$1 FOR UPDATE`
	err := tx.QueryRow(ctx, lock, orderID).Scan(&order.BuyerID, &order.SellerID, &order.ProductID, &order.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	order.ID = orderID
	return &order, nil
}

func lockReputation(ctx context.Context, tx pgx.Tx, accountID int64) (*model.Reputation, error) {
	var rep model.Reputation
	const lock = `SELECT as_buyer_count, as_buyer_sum, as_seller_count, as_seller_sum
                  FROM reputations WHERE account_id=$1 FOR UPDATE`
	err := tx.QueryRow(ctx, lock, accountID).Scan(&rep.AsBuyerCount, &rep.AsBuyerSum, &rep.AsSellerCount, &rep.AsSellerSum)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return &rep, nil
}

func saveReputation(ctx context.Context, tx pgx.Tx, accountID int64, rep *model.Reputation) error {
	const upsert = `INSERT INTO reputations (account_id, as_buyer_count, as_buyer_sum, as_seller_count, as_seller_sum)
                    VALUES ($1, $2, $3, $4, $5)
                    ON CONFLICT (account_id) DO UPDATE
                    SET as_buyer_count=$2, as_buyer_sum=$3, as_seller_count=$4, as_seller_sum=$5`
	_, err := tx.Exec(ctx, upsert, accountID, rep.AsBuyerCount, rep.AsBuyerSum, rep.AsSellerCount, rep.AsSellerSum)
	return err
}

func accumulateCategoryTx(ctx context.Context, tx pgx.Tx, productID uint64, score uint8) error {
	var category string
	err := tx.QueryRow(ctx, `SELECT category FROM products WHERE id=$1`, productID).Scan(&category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	stats := model.CategoryStats{Category: category}
	const lock = `SELECT sales, rating_sum, rating_count FROM category_stats WHERE category=$1 FOR UPDATE`
	err = tx.QueryRow(ctx, lock, category).Scan(&stats.Sales, &stats.RatingSum, &stats.RatingCount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	stats.Accumulate(score)

	const upsert = `INSERT INTO category_stats (category, sales, rating_sum, rating_count)
                    VALUES ($1, $2, $3, $4)
                    ON CONFLICT (category) DO UPDATE
                    SET sales=$2, rating_sum=$3, rating_count=$4`
	_, err = tx.Exec(ctx, upsert, category, stats.Sales, stats.RatingSum, stats.RatingCount)
	return err
}

func (r *reputationRepository) Reputation(ctx context.Context, accountID int64) (*model.Reputation, error) {
	const query = `SELECT as_buyer_count, as_buyer_sum, as_seller_count, as_seller_sum
                   FROM reputations WHERE account_id=$1`
	var rep model.Reputation
	err := r.storage.pool.QueryRow(ctx, query, accountID).Scan(&rep.AsBuyerCount, &rep.AsBuyerSum, &rep.AsSellerCount, &rep.AsSellerSum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *reputationRepository) ListWithReputation(ctx context.Context) ([]model.AccountReputation, error) {
	const query = `SELECT rep.account_id, rep.as_buyer_count, rep.as_buyer_sum, rep.as_seller_count, rep.as_seller_sum
                   FROM reputations rep JOIN roles ON roles.account_id = rep.account_id
                   ORDER BY roles.position`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.AccountReputation
	for rows.Next() {
		var ar model.AccountReputation
		if err := rows.Scan(&ar.AccountID, &ar.Reputation.AsBuyerCount, &ar.Reputation.AsBuyerSum, &ar.Reputation.AsSellerCount, &ar.Reputation.AsSellerSum); err != nil {
			return nil, err
		}
		result = append(result, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reputationRepository) OrderRatings(ctx context.Context, orderID uint64) (*model.OrderRatings, error) {
	const query = `SELECT by_buyer, by_seller FROM order_ratings WHERE order_id=$1`
	ratings := model.OrderRatings{OrderID: orderID}
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&ratings.ByBuyer, &ratings.BySeller)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &ratings, nil
}

func (r *reputationRepository) CategoryStats(ctx context.Context, category string) (*model.CategoryStats, error) {
	const query = `SELECT sales, rating_sum, rating_count FROM category_stats WHERE category=$1`
	stats := model.CategoryStats{Category: category}
	err := r.storage.pool.QueryRow(ctx, query, category).Scan(&stats.Sales, &stats.RatingSum, &stats.RatingCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
