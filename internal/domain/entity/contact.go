package entity

import "strings"

// PersonContact is the phone data configured for one on-call person.
type PersonContact struct {
	Name          string
	DeskExtension int
	// DeskNumber is the extension in its fully dialable form.
	DeskNumber string
	// CellNumber is normalized to +1XXXXXXXXXX.
	CellNumber string
}

// FirstName returns the first word of the person's name.
func (c PersonContact) FirstName() string {
	return FirstName(c.Name)
}

// FirstName returns the first word of a full name.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fullName
	}
	return fields[0]
}
