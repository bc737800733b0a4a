package domain

import "errors"

// OwnerKind discriminates the two legal holders of an invoice.
type OwnerKind string

const (
	OwnerPersonal     OwnerKind = "PERSONAL"
	OwnerOrganization OwnerKind = "ORGANIZATION"
)

// ErrInvalidOwner indicates an owner constructed without a valid holder id.
var ErrInvalidOwner = errors.New("owner requires exactly one holder id")

// Owner is a tagged union: an invoice belongs to either a personal user or
// an organization, never both. Construct via NewPersonalOwner or
// NewOrganizationOwner; the zero value is invalid.
type Owner struct {
	kind   OwnerKind
	userID string
	orgID  string
}

// NewPersonalOwner creates an owner backed by a personal user.
func NewPersonalOwner(userID string) (Owner, error) {
	if userID == "" {
		return Owner{}, ErrInvalidOwner
	}
	return Owner{kind: OwnerPersonal, userID: userID}, nil
}

// NewOrganizationOwner creates an owner backed by an organization.
func NewOrganizationOwner(orgID string) (Owner, error) {
	if orgID == "" {
		return Owner{}, ErrInvalidOwner
	}
	return Owner{kind: OwnerOrganization, orgID: orgID}, nil
}

// Kind returns the owner discriminant.
func (o Owner) Kind() OwnerKind { return o.kind }

// UserID returns the personal holder id and whether this is a personal owner.
func (o Owner) UserID() (string, bool) { return o.userID, o.kind == OwnerPersonal }

// OrganizationID returns the org holder id and whether this is an org owner.
func (o Owner) OrganizationID() (string, bool) { return o.orgID, o.kind == OwnerOrganization }

// IsZero reports whether the owner was never constructed.
func (o Owner) IsZero() bool { return o.kind == "" }

// SequenceScope returns the key under which documents for this owner are
// numbered. Organization-owned documents number per organization; personal
// ones share the tenant-wide counter.
func (o Owner) SequenceScope(tenantID string) string {
	if o.kind == OwnerOrganization {
		return "org:" + o.orgID
	}
	return "tenant:" + tenantID
}
