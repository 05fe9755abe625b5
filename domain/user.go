package domain

type Permission string

const (
	PermissionContracts Permission = "contracts"
	PermissionStock     Permission = "stock"
)

type User struct {
	Id       string
	Username string
	Approved bool
}
