package session

import "github.com/SyphaxBN/pointage-admin/pkg/apiclient"

// mergeUser reconciles a locally cached record with a server-provided one.
// The server wins for every field it returns; fields it omits keep their
// local value. The result is not yet normalized — callers run it through
// apiclient.NormalizeUser so resolved asset paths stay consistent.
func mergeUser(local, server apiclient.User) apiclient.User {
	merged := local
	if server.ID != "" {
		merged.ID = server.ID
	}
	if server.Name != "" {
		merged.Name = server.Name
	}
	if server.Email != "" {
		merged.Email = server.Email
	}
	if server.Role != "" {
		merged.Role = server.Role
	}
	if server.Photo != "" {
		merged.Photo = server.Photo
	}
	if server.Avatar != "" {
		merged.Avatar = server.Avatar
	}
	return merged
}
