package clientservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainerrors "socialdesk/contexts/agency/client-service/domain/errors"
	httptransport "socialdesk/contexts/agency/client-service/transport/http"
)

const ownerID = "7b6fc18a-31d0-4b5c-9a43-27cbf1dd3c1e"

// reversibleCipher is a stand-in encryptor with an observable ciphertext
// shape, so at-rest assertions do not depend on real key material.
type reversibleCipher struct{}

func (reversibleCipher) Encrypt(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	return "sealed:" + value, nil
}

func (reversibleCipher) Decrypt(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	return strings.TrimPrefix(value, "sealed:"), nil
}

func strPtr(value string) *string {
	return &value
}

func TestClientContactIsEncryptedAtRest(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)

	resp, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name:    "Acme Coffee",
		Contact: strPtr("owner@acme.example"),
	})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}
	if resp.Client.Contact != "owner@acme.example" {
		t.Fatalf("expected plaintext contact in response, got %q", resp.Client.Contact)
	}

	stored, exists := module.Store.ContactAtRest(resp.Client.ID)
	if !exists {
		t.Fatalf("expected stored client")
	}
	if stored != "sealed:owner@acme.example" {
		t.Fatalf("expected ciphertext at rest, got %q", stored)
	}
}

func TestClientEmptyContactStaysEmpty(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)

	resp, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name: "No Contact",
	})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}
	stored, _ := module.Store.ContactAtRest(resp.Client.ID)
	if stored != "" {
		t.Fatalf("expected empty contact at rest, got %q", stored)
	}
}

func TestClientNameValidation(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)

	_, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name: "a",
	})
	if !errors.Is(err, domainerrors.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
}

func TestClientNameLimitCountsCharacters(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)

	// 120 three-byte runes: over the limit if counted in bytes.
	resp, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name: strings.Repeat("日", 120),
	})
	if err != nil {
		t.Fatalf("expected 120-character name to pass, got %v", err)
	}
	if resp.Client.Name != strings.Repeat("日", 120) {
		t.Fatalf("unexpected name: %q", resp.Client.Name)
	}

	_, err = module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name: strings.Repeat("日", 121),
	})
	if !errors.Is(err, domainerrors.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
}

func TestClientUpdateRequiresAField(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)
	created, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name: "Acme Coffee",
	})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	_, err = module.Handler.UpdateClientHandler(context.Background(), ownerID, created.Client.ID, httptransport.UpdateClientRequest{})
	if !errors.Is(err, domainerrors.ErrNoFieldsToUpdate) {
		t.Fatalf("expected no fields error, got %v", err)
	}
}

func TestClientUpdateReencryptsContact(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)
	created, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name:    "Acme Coffee",
		Contact: strPtr("old@acme.example"),
	})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	updated, err := module.Handler.UpdateClientHandler(context.Background(), ownerID, created.Client.ID, httptransport.UpdateClientRequest{
		Contact: strPtr("new@acme.example"),
	})
	if err != nil {
		t.Fatalf("update client failed: %v", err)
	}
	if updated.Client.Contact != "new@acme.example" {
		t.Fatalf("expected plaintext in response, got %q", updated.Client.Contact)
	}
	stored, _ := module.Store.ContactAtRest(created.Client.ID)
	if stored != "sealed:new@acme.example" {
		t.Fatalf("expected re-encrypted contact, got %q", stored)
	}
}

func TestClientOwnerScoping(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)
	created, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{
		Name: "Acme Coffee",
	})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	other := "0f1f44b1-8f3a-45a9-9a3e-6f52b9c6a7a2"
	if _, err := module.Handler.GetClientHandler(context.Background(), other, created.Client.ID); !errors.Is(err, domainerrors.ErrClientNotFound) {
		t.Fatalf("expected not found for foreign owner, got %v", err)
	}
	if err := module.Handler.DeleteClientHandler(context.Background(), other, created.Client.ID); !errors.Is(err, domainerrors.ErrClientNotFound) {
		t.Fatalf("expected delete scoping, got %v", err)
	}
}

func TestClientListSortsByName(t *testing.T) {
	module := NewInMemoryModule(reversibleCipher{}, nil)
	for _, name := range []string{"zeta Studio", "Acme Coffee", "beacon Gym"} {
		if _, err := module.Handler.CreateClientHandler(context.Background(), ownerID, httptransport.CreateClientRequest{Name: name}); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	resp, err := module.Handler.ListClientsHandler(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := []string{resp.Data[0].Name, resp.Data[1].Name, resp.Data[2].Name}
	want := []string{"Acme Coffee", "beacon Gym", "zeta Studio"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
