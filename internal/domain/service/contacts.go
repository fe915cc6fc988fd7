package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

const (
	SectionDeskPhone = "desk_phone"
	SectionCellPhone = "cell_phone"
)

type contactResolver struct {
	store           contract.ConfigStore
	deskPrefix      string
	deskReplacement string
}

func newContactResolver(store contract.ConfigStore, deskPrefix, deskReplacement string) *contactResolver {
	if deskPrefix == "" {
		deskPrefix = domain.DefaultDeskPrefix
	}
	if deskReplacement == "" {
		deskReplacement = domain.DefaultDeskReplacement
	}
	return &contactResolver{
		store:           store,
		deskPrefix:      deskPrefix,
		deskReplacement: deskReplacement,
	}
}

// resolve looks up both phone numbers of a person. direction is "from" for
// the person leaving on-call and "to" for the one entering it.
func (r *contactResolver) resolve(name, direction string) (entity.PersonContact, error) {
	desk, err := r.store.Person(SectionDeskPhone, name)
	if err != nil {
		return entity.PersonContact{}, &domain.MissingContactError{Person: name, Direction: direction, Field: SectionDeskPhone, Err: err}
	}
	extension, err := strconv.Atoi(strings.TrimSpace(desk))
	if err != nil {
		return entity.PersonContact{}, &domain.MissingContactError{Person: name, Direction: direction, Field: SectionDeskPhone, Err: fmt.Errorf("not an extension: %w", err)}
	}

	cell, err := r.store.Person(SectionCellPhone, name)
	if err != nil {
		return entity.PersonContact{}, &domain.MissingContactError{Person: name, Direction: direction, Field: SectionCellPhone, Err: err}
	}
	cellNumber := NormalizeCell(cell)
	if cellNumber == domain.CountryCode {
		return entity.PersonContact{}, &domain.MissingContactError{Person: name, Direction: direction, Field: SectionCellPhone, Err: fmt.Errorf("no digits in %q", cell)}
	}

	return entity.PersonContact{
		Name:          name,
		DeskExtension: extension,
		DeskNumber:    ExpandDesk(strconv.Itoa(extension), r.deskPrefix, r.deskReplacement),
		CellNumber:    cellNumber,
	}, nil
}
