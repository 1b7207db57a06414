package add

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/store"
)

// Add appends a single hand-typed card to a collection, creating the
// collection on first use.
type Add struct {
	Collection  string
	Fields      []string
	Persistence store.Persistence
}

func (a *Add) Do(ctx context.Context) error {
	if a.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if a.Collection == "" {
		return errors.New("collection required")
	}

	c, err := ParseFields(a.Fields)
	if err != nil {
		return err
	}
	if err := a.Persistence.Append(a.Collection, c); err != nil {
		return err
	}
	fmt.Printf("%s: added card with %d field(s)\n", a.Collection, len(c))
	return nil
}

// ParseFields builds a card from field=value arguments. Values are kept
// as strings; structured cards come in through import instead.
func ParseFields(args []string) (card.Card, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one field=value pair required")
	}
	c := make(card.Card, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, want field=value", arg)
		}
		c[k] = v
	}
	return c, nil
}
