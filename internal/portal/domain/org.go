package domain

import (
	"errors"
	"strings"
	"time"
)

// OrgKind discriminates the two organization variants. A firm owns zero or
// more clients; the hierarchy is exactly two levels deep.
type OrgKind string

const (
	OrgFirm   OrgKind = "firm"
	OrgClient OrgKind = "client"
)

var (
	ErrBlankOrgName   = errors.New("domain: organization name is blank")
	ErrFirmWithParent = errors.New("domain: a firm cannot have a parent")
	ErrClientNoParent = errors.New("domain: a client requires a parent firm")
)

type Org struct {
	ID       string
	Name     string
	Kind     OrgKind
	ParentID string // set iff Kind == OrgClient

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFirm validates and builds a root organization. The parent invariant
// lives here, in the constructor, rather than in scattered validation.
func NewFirm(id, name string) (Org, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Org{}, ErrBlankOrgName
	}
	return Org{ID: id, Name: name, Kind: OrgFirm}, nil
}

// NewClient validates and builds a child organization under parentFirmID.
func NewClient(id, name, parentFirmID string) (Org, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Org{}, ErrBlankOrgName
	}
	if parentFirmID == "" {
		return Org{}, ErrClientNoParent
	}
	return Org{ID: id, Name: name, Kind: OrgClient, ParentID: parentFirmID}, nil
}

// Validate re-checks the parent invariant on a stored record.
func (o Org) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrBlankOrgName
	}
	switch o.Kind {
	case OrgFirm:
		if o.ParentID != "" {
			return ErrFirmWithParent
		}
	case OrgClient:
		if o.ParentID == "" {
			return ErrClientNoParent
		}
	}
	return nil
}
