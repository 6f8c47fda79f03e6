package models

type AccountRole string

const (
	RoleBuyer  AccountRole = "buyer"
	RoleBroker AccountRole = "broker"
)

// ValidRole проверяет, что роль одна из поддерживаемых
func ValidRole(r AccountRole) bool {
	return r == RoleBuyer || r == RoleBroker
}
