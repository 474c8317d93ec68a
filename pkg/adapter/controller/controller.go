package controller

// Controller binds the HTTP-facing adapters.
type Controller struct {
	Import Import
}
