package repository

import "context"

type AdminRepository interface {
	// GetAdminUIDs reads config/admins. found is false when the document
	// does not exist.
	GetAdminUIDs(ctx context.Context) (uids []string, found bool, err error)
}
