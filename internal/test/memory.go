package test

import (
	"context"
	"math"
	"time"

	domainErrors "github.com/peerbay/marketplace/internal/domain/errors"
	"github.com/peerbay/marketplace/internal/domain/model"
	"github.com/peerbay/marketplace/internal/domain/repository"
)

// MemoryStore is an in-memory repository factory with the same semantics as
// the PostgreSQL storage: checks run before any write, so a failed call
// leaves the state untouched. Counters are exported so tests can push them
// to their ceilings.
type MemoryStore struct {
	AccountsByLogin map[string]*model.Account
	AccountsByID    map[int64]*model.Account
	NextAccountID   int64

	RolesByAccount map[int64]model.Role
	Roster         []int64
	RosterCount    uint32

	ProductsByID     map[uint64]*model.Product
	ProductsBySeller map[int64][]uint64
	NextProductID    uint64
	SalesByProduct   map[uint64]uint32

	OrdersByID    map[uint64]*model.Order
	OrdersByBuyer map[int64][]uint64
	NextOrderID   uint64

	RatingsByOrder       map[uint64]*model.OrderRatings
	ReputationsByAccount map[int64]*model.Reputation
	StatsByCategory      map[string]*model.CategoryStats
}

// NewMemoryStore constructs an empty store with identifiers starting at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		AccountsByLogin:      make(map[string]*model.Account),
		AccountsByID:         make(map[int64]*model.Account),
		NextAccountID:        1,
		RolesByAccount:       make(map[int64]model.Role),
		ProductsByID:         make(map[uint64]*model.Product),
		ProductsBySeller:     make(map[int64][]uint64),
		NextProductID:        1,
		SalesByProduct:       make(map[uint64]uint32),
		OrdersByID:           make(map[uint64]*model.Order),
		OrdersByBuyer:        make(map[int64][]uint64),
		NextOrderID:          1,
		RatingsByOrder:       make(map[uint64]*model.OrderRatings),
		ReputationsByAccount: make(map[int64]*model.Reputation),
		StatsByCategory:      make(map[string]*model.CategoryStats),
	}
}

// Factory accessors.

func (s *MemoryStore) Accounts() repository.AccountRepository       { return &memoryAccounts{s} }
func (s *MemoryStore) Roles() repository.RoleRepository             { return &memoryRoles{s} }
func (s *MemoryStore) Products() repository.ProductRepository       { return &memoryProducts{s} }
func (s *MemoryStore) Orders() repository.OrderRepository           { return &memoryOrders{s} }
func (s *MemoryStore) Reputations() repository.ReputationRepository { return &memoryReputations{s} }

var _ repository.Factory = (*MemoryStore)(nil)

type memoryAccounts struct{ s *MemoryStore }

func (r *memoryAccounts) Create(_ context.Context, login, passwordHash string) (*model.Account, error) {
	if _, exists := r.s.AccountsByLogin[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	acc := &model.Account{ID: r.s.NextAccountID, Login: login, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.s.NextAccountID++
	r.s.AccountsByLogin[login] = acc
	r.s.AccountsByID[acc.ID] = acc
	return acc, nil
}

func (r *memoryAccounts) GetByLogin(_ context.Context, login string) (*model.Account, error) {
	if acc, ok := r.s.AccountsByLogin[login]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memoryAccounts) GetByID(_ context.Context, id int64) (*model.Account, error) {
	if acc, ok := r.s.AccountsByID[id]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

type memoryRoles struct{ s *MemoryStore }

func (r *memoryRoles) Register(_ context.Context, accountID int64, role model.Role) error {
	if _, exists := r.s.RolesByAccount[accountID]; exists {
		return domainErrors.ErrAlreadyRegistered
	}
	if r.s.RosterCount == math.MaxUint32 {
		return domainErrors.ErrOverflow
	}
	r.s.RolesByAccount[accountID] = role
	r.s.Roster = append(r.s.Roster, accountID)
	r.s.RosterCount++
	return nil
}

func (r *memoryRoles) Save(_ context.Context, accountID int64, role model.Role) error {
	if _, exists := r.s.RolesByAccount[accountID]; !exists {
		return domainErrors.ErrNotFound
	}
	r.s.RolesByAccount[accountID] = role
	return nil
}

func (r *memoryRoles) Get(_ context.Context, accountID int64) (model.Role, error) {
	if role, ok := r.s.RolesByAccount[accountID]; ok {
		return role, nil
	}
	return "", domainErrors.ErrNotFound
}

func (r *memoryRoles) ListRegistered(_ context.Context) ([]int64, error) {
	out := make([]int64, len(r.s.Roster))
	copy(out, r.s.Roster)
	return out, nil
}

type memoryProducts struct{ s *MemoryStore }

func (r *memoryProducts) Create(_ context.Context, product *model.Product) (uint64, error) {
	id := r.s.NextProductID
	if id == math.MaxUint64 {
		return 0, domainErrors.ErrOverflow
	}
	stored := *product
	stored.ID = id
	stored.CreatedAt = time.Now()
	r.s.ProductsByID[id] = &stored
	r.s.ProductsBySeller[stored.SellerID] = append(r.s.ProductsBySeller[stored.SellerID], id)
	r.s.NextProductID = id + 1
	return id, nil
}

func (r *memoryProducts) Get(_ context.Context, id uint64) (*model.Product, error) {
	if p, ok := r.s.ProductsByID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domainErrors.ErrProductNotFound
}

func (r *memoryProducts) ListBySeller(_ context.Context, sellerID int64) ([]model.Product, error) {
	var out []model.Product
	for _, id := range r.s.ProductsBySeller[sellerID] {
		if p, ok := r.s.ProductsByID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryProducts) ListAll(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for id := uint64(1); id < r.s.NextProductID; id++ {
		if p, ok := r.s.ProductsByID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryProducts) IncreaseStock(_ context.Context, id uint64, amount uint32) error {
	p, ok := r.s.ProductsByID[id]
	if !ok {
		return domainErrors.ErrProductNotFound
	}
	cp := *p
	if err := cp.IncreaseStock(amount); err != nil {
		return err
	}
	r.s.ProductsByID[id] = &cp
	return nil
}

func (r *memoryProducts) Sales(_ context.Context, id uint64) (uint32, error) {
	return r.s.SalesByProduct[id], nil
}

type memoryOrders struct{ s *MemoryStore }

func (r *memoryOrders) Create(_ context.Context, buyerID int64, productID uint64, quantity uint32) (*model.Order, error) {
	product, ok := r.s.OrdersProduct(productID)
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}

	id := r.s.NextOrderID
	if id == math.MaxUint64 {
		return nil, domainErrors.ErrOverflow
	}

	updated := *product
	if err := updated.DecreaseStock(quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &model.Order{
		ID:        id,
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
		ProductID: productID,
		Quantity:  quantity,
		State:     model.OrderStatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.s.ProductsByID[productID] = &updated
	r.s.OrdersByID[id] = order
	r.s.OrdersByBuyer[buyerID] = append(r.s.OrdersByBuyer[buyerID], id)
	r.s.NextOrderID = id + 1

	cp := *order
	return &cp, nil
}

// OrdersProduct looks up a product for order operations.
func (s *MemoryStore) OrdersProduct(productID uint64) (*model.Product, bool) {
	p, ok := s.ProductsByID[productID]
	return p, ok
}

func (r *memoryOrders) Get(_ context.Context, id uint64) (*model.Order, error) {
	if o, ok := r.s.OrdersByID[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domainErrors.ErrOrderNotFound
}

func (r *memoryOrders) MarkShipped(_ context.Context, callerID int64, orderID uint64) error {
	order, ok := r.s.OrdersByID[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	if order.SellerID != callerID {
		return domainErrors.ErrNotAuthorized
	}
	if order.State != model.OrderStatePending {
		return domainErrors.ErrInvalidState
	}
	order.State = model.OrderStateShipped
	order.UpdatedAt = time.Now()
	return nil
}

func (r *memoryOrders) MarkReceived(_ context.Context, callerID int64, orderID uint64) error {
	order, ok := r.s.OrdersByID[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	if order.BuyerID != callerID {
		return domainErrors.ErrNotAuthorized
	}
	if order.State != model.OrderStateShipped {
		return domainErrors.ErrInvalidState
	}
	if r.s.SalesByProduct[order.ProductID] == math.MaxUint32 {
		return domainErrors.ErrOverflow
	}
	order.State = model.OrderStateReceived
	order.UpdatedAt = time.Now()
	r.s.SalesByProduct[order.ProductID]++
	r.s.RatingsByOrder[orderID] = &model.OrderRatings{OrderID: orderID}
	return nil
}

func (r *memoryOrders) RequestCancelByBuyer(_ context.Context, callerID int64, orderID uint64) error {
	return r.consentCancel(orderID, callerID, true)
}

func (r *memoryOrders) AcceptCancelBySeller(_ context.Context, callerID int64, orderID uint64) error {
	return r.consentCancel(orderID, callerID, false)
}

func (r *memoryOrders) consentCancel(orderID uint64, callerID int64, byBuyer bool) error {
	order, ok := r.s.OrdersByID[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
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

	updated := *order
	if byBuyer {
		updated.BuyerAcceptsCancel = true
	} else {
		updated.SellerAcceptsCancel = true
	}

	if updated.CancelIfBothAccept() {
		product, ok := r.s.ProductsByID[order.ProductID]
		if !ok {
			return domainErrors.ErrProductNotFound
		}
		restored := *product
		if err := restored.IncreaseStock(order.Quantity); err != nil {
			return err
		}
		r.s.ProductsByID[order.ProductID] = &restored
	}

	updated.UpdatedAt = time.Now()
	r.s.OrdersByID[orderID] = &updated
	return nil
}

func (r *memoryOrders) CountByBuyer(_ context.Context, accountID int64) (uint32, error) {
	return uint32(len(r.s.OrdersByBuyer[accountID])), nil
}

type memoryReputations struct{ s *MemoryStore }

func (r *memoryReputations) RateSeller(_ context.Context, callerID int64, orderID uint64, score uint8) error {
	order, ok := r.s.OrdersByID[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	if order.BuyerID != callerID {
		return domainErrors.ErrNotAuthorized
	}
	if order.State != model.OrderStateReceived {
		return domainErrors.ErrOrderNotReceived
	}
	ratings, ok := r.s.RatingsByOrder[orderID]
	if !ok {
		return domainErrors.ErrInvalidState
	}
	if ratings.ByBuyer != nil {
		return domainErrors.ErrAlreadyRated
	}

	rep := model.Reputation{}
	if existing, ok := r.s.ReputationsByAccount[order.SellerID]; ok {
		rep = *existing
	}
	if err := rep.AddAsSeller(score); err != nil {
		return err
	}

	s := score
	ratings.ByBuyer = &s
	r.s.ReputationsByAccount[order.SellerID] = &rep

	if product, ok := r.s.ProductsByID[order.ProductID]; ok {
		stats, ok := r.s.StatsByCategory[product.Category]
		if !ok {
			stats = &model.CategoryStats{Category: product.Category}
			r.s.StatsByCategory[product.Category] = stats
		}
		stats.Accumulate(score)
	}
	return nil
}

func (r *memoryReputations) RateBuyer(_ context.Context, callerID int64, orderID uint64, score uint8) error {
	order, ok := r.s.OrdersByID[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	if order.SellerID != callerID {
		return domainErrors.ErrNotAuthorized
	}
	if order.State != model.OrderStateReceived {
		return domainErrors.ErrOrderNotReceived
	}
	ratings, ok := r.s.RatingsByOrder[orderID]
	if !ok {
		return domainErrors.ErrInvalidState
	}
	if ratings.BySeller != nil {
		return domainErrors.ErrAlreadyRated
	}

	rep := model.Reputation{}
	if existing, ok := r.s.ReputationsByAccount[order.BuyerID]; ok {
		rep = *existing
	}
	if err := rep.AddAsBuyer(score); err != nil {
		return err
	}

	s := score
	ratings.BySeller = &s
	r.s.ReputationsByAccount[order.BuyerID] = &rep
	return nil
}

func (r *memoryReputations) Reputation(_ context.Context, accountID int64) (*model.Reputation, error) {
	if rep, ok := r.s.ReputationsByAccount[accountID]; ok {
		cp := *rep
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memoryReputations) ListWithReputation(_ context.Context) ([]model.AccountReputation, error) {
	var out []model.AccountReputation
	for _, accountID := range r.s.Roster {
		if rep, ok := r.s.ReputationsByAccount[accountID]; ok {
			out = append(out, model.AccountReputation{AccountID: accountID, Reputation: *rep})
		}
	}
	return out, nil
}

func (r *memoryReputations) OrderRatings(_ context.Context, orderID uint64) (*model.OrderRatings, error) {
	if ratings, ok := r.s.RatingsByOrder[orderID]; ok {
		cp := *ratings
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memoryReputations) CategoryStats(_ context.Context, category string) (*model.CategoryStats, error) {
	if stats, ok := r.s.StatsByCategory[category]; ok {
		cp := *stats
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}
