package domain

// BootstrapData describes the first administrator.
type BootstrapData struct {
	AdminEmail    string
	AdminName     string
	AdminPassword string
}
