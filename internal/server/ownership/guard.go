// Package ownership enforces single-owner access to per-user resources and
// writes the audit trail for every guarded read, update and delete.
package ownership

import (
	"context"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/logging"
)

// Kind names a resource type in log lines and errors, e.g.
// Kind{Name: "shopping list", Plural: "shopping lists"}.
type Kind struct {
	Name   string
	Plural string
}

// Title returns Name with its first letter upper-cased.
func (k Kind) Title() string {
	r, n := utf8.DecodeRuneInString(k.Name)
	if r == utf8.RuneError {
		return k.Name
	}
	return string(unicode.ToUpper(r)) + k.Name[n:]
}

var (
	KindEvent         = Kind{Name: "event", Plural: "events"}
	KindToDo          = Kind{Name: "todo", Plural: "todos"}
	KindShoppingList  = Kind{Name: "shopping list", Plural: "shopping lists"}
	KindInvite        = Kind{Name: "invite", Plural: "invites"}
	KindImportantDate = Kind{Name: "important date", Plural: "important dates"}
	KindDinner        = Kind{Name: "dinner", Plural: "dinners"}
	KindUser          = Kind{Name: "user", Plural: "users"}
)

// Loader fetches a resource by id. A missing row is reported as
// common.ErrorNotFound.
type Loader[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
}

// Mutation runs after the ownership check passes and returns the resulting
// resource.
type Mutation[T any] func(ctx context.Context, current *T) (*T, error)

type action struct {
	progressive string
	infinitive  string
	past        string
}

var (
	retrieve = action{"Retrieving", "retrieve", "retrieved"}
	update   = action{"Updating", "update", "updated"}
	remove   = action{"Deleting", "delete", "deleted"}
)

// Guard checks that the caller owns a resource before it is returned or
// changed. It holds no mutable state and is safe for concurrent use.
//
// Every call logs one Debug record first. A denied call then logs exactly
// one Warn; a successful call logs exactly one Info. Missing resources log
// neither.
type Guard[T any] struct {
	kind  Kind
	load  Loader[T]
	owner func(*T) int64
	log   logging.Logger
}

func NewGuard[T any](kind Kind, load Loader[T], owner func(*T) int64, log logging.Logger) *Guard[T] {
	if log == nil {
		log = logging.Nop()
	}
	return &Guard[T]{kind: kind, load: load, owner: owner, log: log}
}

func (g *Guard[T]) Kind() Kind {
	return g.kind
}

// Retrieve returns the resource if callerID owns it.
func (g *Guard[T]) Retrieve(ctx context.Context, callerID, id int64) (*T, error) {
	return g.run(ctx, retrieve, callerID, id, nil)
}

// Update runs fn on the resource if callerID owns it.
func (g *Guard[T]) Update(ctx context.Context, callerID, id int64, fn Mutation[T]) (*T, error) {
	return g.run(ctx, update, callerID, id, fn)
}

// Delete runs fn on the resource if callerID owns it.
func (g *Guard[T]) Delete(ctx context.Context, callerID, id int64, fn Mutation[T]) (*T, error) {
	return g.run(ctx, remove, callerID, id, fn)
}

func (g *Guard[T]) run(ctx context.Context, a action, callerID, id int64, fn Mutation[T]) (*T, error) {
	kind := g.kind.Name
	attrs := []any{"kind", kind, "id", id, "caller_id", callerID}

	g.log.Debug(ctx, fmt.Sprintf("%s %s with ID %d for user %d.", a.progressive, kind, id, callerID), attrs...)

	current, err := g.load.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &common.NotFoundError{Kind: g.kind.Title(), ID: id}
		}
		g.log.Error(ctx, fmt.Sprintf("Failed to %s %s with ID %d.", a.infinitive, kind, id), append(attrs, "error", err)...)
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}

	if g.owner(current) != callerID {
		g.log.Warn(ctx, fmt.Sprintf("Unauthorized attempt to access %s with ID %d by user ID %d.", kind, id, callerID), attrs...)
		return nil, &common.UnauthorizedAccessError{Kind: kind, ID: id}
	}

	result := current
	if fn != nil {
		result, err = fn(ctx, current)
		if err != nil {
			g.log.Error(ctx, fmt.Sprintf("Failed to %s %s with ID %d.", a.infinitive, kind, id), append(attrs, "error", err)...)
			return nil, err
		}
	}

	g.log.Info(ctx, fmt.Sprintf("%s with ID %d %s successfully.", kind, id, a.past), attrs...)
	return result, nil
}
