package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Roles() RoleRepository
	Products() ProductRepository
	Orders() OrderRepository
	Reputations() ReputationRepository
}
