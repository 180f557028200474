package ports

import (
	"context"
	"time"

	"socialdesk/contexts/agency/client-service/domain/entities"
)

// ClientRepository is owner-scoped on every read and mutation. The Contact
// field crosses this boundary encrypted; the repository never handles
// plaintext.
type ClientRepository interface {
	CreateClient(ctx context.Context, client entities.Client) error
	UpdateClient(ctx context.Context, client entities.Client) error
	GetClient(ctx context.Context, userID string, clientID string) (entities.Client, error)
	ListClients(ctx context.Context, userID string) ([]entities.Client, error)
	DeleteClient(ctx context.Context, userID string, clientID string) error
}

// Encryptor is the symmetric cipher for contact-at-rest. Encrypt of an
// empty string returns an empty string, so absent contacts stay absent.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
