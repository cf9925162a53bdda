package command

import (
	"errors"
	"fmt"
)

// DuplicateError is returned when a definition collides with an existing one
// on (name, guild, kind). The earlier registration stays in place.
type DuplicateError struct {
	Name    string
	GuildID string
	Kind    Kind
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("command: %s %q already registered in scope %q", e.Kind, e.Name, scopeLabel(e.GuildID))
}

// NotFoundError is returned when no definition matches a resolve request.
type NotFoundError struct {
	Name    string
	GuildID string
	Kind    Kind
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command: no %s %q in scope %q", e.Kind, e.Name, scopeLabel(e.GuildID))
}

// IsDuplicate reports whether err is a DuplicateError.
func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func scopeLabel(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return guildID
}
