package entities

import "time"

// Client is an agency customer a campaign can be linked to. Contact holds
// plaintext inside the application; stores only ever see ciphertext.
type Client struct {
	ClientID  string
	UserID    string
	Name      string
	Contact   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
