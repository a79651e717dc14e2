package richtext

import (
	"context"
	"regexp"
)

// NameIDResolver maps human readable names to object ids and back. An empty
// string with a nil error means "not found".
type NameIDResolver interface {
	ResolveNameToID(ctx context.Context, name string) (string, error)
	ResolveIDToName(ctx context.Context, id string) (string, error)
}

// Resolvers groups one resolver per mention kind. Nil entries resolve nothing.
type Resolvers struct {
	Page       NameIDResolver
	Database   NameIDResolver
	DataSource NameIDResolver
	User       NameIDResolver
}

func (r Resolvers) forType(t MentionType) NameIDResolver {
	switch t {
	case MentionPage:
		return r.Page
	case MentionDatabase:
		return r.Database
	case MentionDataSource:
		return r.DataSource
	case MentionUser:
		return r.User
	}
	return nil
}

var idPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{12}$`)

// LooksLikeID reports whether value is a uuid, with or without dashes.
func LooksLikeID(value string) bool {
	return idPattern.MatchString(value)
}
