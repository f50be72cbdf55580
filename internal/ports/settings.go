package ports

import "context"

// SettingsRepository stocke le blob JSON des réglages tel quel.
// Load renvoie ErrNotFound tant que rien n'a été enregistré.
type SettingsRepository interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}
