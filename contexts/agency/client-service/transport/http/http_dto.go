package http

// ErrorResponse is the uniform error payload for client endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateClientRequest struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type ClientDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ClientResponse struct {
	Client ClientDTO `json:"client"`
}

type ListClientsResponse struct {
	Data []ClientDTO `json:"data"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
