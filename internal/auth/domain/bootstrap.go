package domain

// BootstrapData describes the first SuperAdmin account created on an empty
// store.
type BootstrapData struct {
	Name     string
	Email    string
	Phone    string
	Password string
}
