//go:build unix

package launcher

import (
	"fmt"
	"os/user"
	"strconv"
)

// UnixCredentialResolver resolves a Principal's User/Group fields to
// OS uid/gid via the standard library's user database, falling back to
// direct numeric IDs the same way the teacher's credentials.Manager does.
type UnixCredentialResolver struct{}

// NewCredentialResolver constructs a UnixCredentialResolver.
func NewCredentialResolver() UnixCredentialResolver { return UnixCredentialResolver{} }

func (UnixCredentialResolver) ResolveCredentials(username, groupname string) (uid, gid uint32, err error) {
	if username != "" {
		u, lookupErr := user.Lookup(username)
		if lookupErr != nil {
			u, lookupErr = user.LookupId(username)
			if lookupErr != nil {
				return 0, 0, fmt.Errorf("resolving user %q: %w", username, lookupErr)
			}
		}
		parsedUID, _ := strconv.ParseUint(u.Uid, 10, 32)
		uid = uint32(parsedUID)
		if groupname == "" {
			parsedGID, _ := strconv.ParseUint(u.Gid, 10, 32)
			gid = uint32(parsedGID)
		}
	}
	if groupname != "" {
		g, lookupErr := user.LookupGroup(groupname)
		if lookupErr != nil {
			g, lookupErr = user.LookupGroupId(groupname)
			if lookupErr != nil {
				return 0, 0, fmt.Errorf("resolving group %q: %w", groupname, lookupErr)
			}
		}
		parsedGID, _ := strconv.ParseUint(g.Gid, 10, 32)
		gid = uint32(parsedGID)
	}
	return uid, gid, nil
}
